package engine

// EvaluationContext tracks the cells currently being evaluated by one Resolve call.
// It doubles as the evaluation stack, so its size is the recursion depth.
type EvaluationContext struct {
	inProgress    map[string]bool
	maxDepth      int
	depthExceeded bool
}

func NewEvaluationContext(maxDepth int) *EvaluationContext {
	return &EvaluationContext{
		inProgress: map[string]bool{},
		maxDepth:   maxDepth,
	}
}

func (c *EvaluationContext) InProgress(address string) bool {
	return c.inProgress[address]
}

// Enter marks address as in progress. It refuses once the depth bound is hit
// and remembers that, so the whole call can be reported as failed.
func (c *EvaluationContext) Enter(address string) bool {
	if c.maxDepth > 0 && len(c.inProgress) >= c.maxDepth {
		c.depthExceeded = true
		return false
	}

	c.inProgress[address] = true
	return true
}

func (c *EvaluationContext) Leave(address string) {
	delete(c.inProgress, address)
}

func (c *EvaluationContext) DepthExceeded() bool {
	return c.depthExceeded
}
