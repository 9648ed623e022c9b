package main

import (
	"errors"
	"fmt"
	"gridCalc/engine"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const Version = "1.0.0"

var InvalidAssignmentError = errors.New("expected ADDRESS=INPUT")

func NewRootCommand(v *viper.Viper) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gridcalc",
		Short:         "Spreadsheet formula engine",
		Long:          "gridcalc stores cell literals and formulas per sheet and resolves them on read, over HTTP or from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("log-level", DefaultConfig.LogLevel, "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Int("max-depth", DefaultConfig.MaxDepth, "Maximum formula nesting depth")

	_ = v.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("max-depth", rootCmd.PersistentFlags().Lookup("max-depth"))

	rootCmd.AddCommand(newServeCmd(v))
	rootCmd.AddCommand(newEvalCmd(v))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := LoadConfig(v)
			if err != nil {
				return err
			}

			logger, err := NewLogger(cmd.ErrOrStderr(), config.LogLevel)
			if err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return RunApp(ctx, config, logger)
		},
	}

	cmd.Flags().String("listen-address", DefaultConfig.ListenAddress, "HTTP listen address")
	cmd.Flags().Int("webhook-workers", DefaultConfig.WebhookWorkers, "Concurrent webhook senders")
	cmd.Flags().Int("webhook-queue-size", DefaultConfig.WebhookQueueSize, "Buffered webhook notifications")
	cmd.Flags().Duration("webhook-timeout", DefaultConfig.WebhookTimeout, "Timeout of one webhook request")
	cmd.Flags().Int("history-limit", DefaultConfig.HistoryLimit, "Undo steps kept per sheet, 0 disables undo")

	_ = v.BindPFlag("listen-address", cmd.Flags().Lookup("listen-address"))
	_ = v.BindPFlag("webhook-workers", cmd.Flags().Lookup("webhook-workers"))
	_ = v.BindPFlag("webhook-queue-size", cmd.Flags().Lookup("webhook-queue-size"))
	_ = v.BindPFlag("webhook-timeout", cmd.Flags().Lookup("webhook-timeout"))
	_ = v.BindPFlag("history-limit", cmd.Flags().Lookup("history-limit"))

	return cmd
}

func newEvalCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [ADDRESS...]",
		Short: "Resolve cells of a workbook or of ad-hoc input",
		Long: "Eval loads an optional .xlsx worksheet, applies --set assignments and prints the resolved " +
			"value of every given address, or of every populated cell when none is given.",
		Example: "  gridcalc eval --set A1=5 --set A2==A1*2 A2\n" +
			"  gridcalc eval --xlsx book.xlsx --sheet Sheet1 --formula '=SUM(A1:A9)'",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := LoadConfig(v)
			if err != nil {
				return err
			}

			logger, err := NewLogger(cmd.ErrOrStderr(), config.LogLevel)
			if err != nil {
				return err
			}

			xlsxPath, _ := cmd.Flags().GetString("xlsx")
			sheetName, _ := cmd.Flags().GetString("sheet")
			assignments, _ := cmd.Flags().GetStringArray("set")
			formulas, _ := cmd.Flags().GetStringArray("formula")

			canonicalizer := NewCanonicalizer()
			sheet := engine.NewSheet()

			if xlsxPath != "" {
				if _, err = NewWorkbookImporter(logger).ImportFile(xlsxPath, sheetName, sheet); err != nil {
					return err
				}
			}

			for _, assignment := range assignments {
				address, input, found := strings.Cut(assignment, "=")
				if !found {
					return fmt.Errorf("--set `%s`: %w", assignment, InvalidAssignmentError)
				}

				if err = engine.SetInput(sheet, canonicalizer.CanonicalizeCellId(address), input); err != nil {
					return err
				}
			}

			addresses := sheet.Addresses()
			if len(args) > 0 {
				addresses = make([]string, 0, len(args))
				for _, arg := range args {
					address := canonicalizer.CanonicalizeCellId(arg)
					if _, err = engine.DecodeAddress(address); err != nil {
						return err
					}
					addresses = append(addresses, address)
				}
			}

			evaluator := engine.NewFormulaEvaluator(sheet, config.MaxDepth)
			out := cmd.OutOrStdout()

			for _, address := range addresses {
				_, _ = fmt.Fprintf(out, "%s\t%s\n", address, evaluator.Resolve(address))
			}

			for _, formula := range formulas {
				_, _ = fmt.Fprintf(out, "%s\t%s\n", formula, evaluator.EvaluateFormula(formula))
			}

			return nil
		},
	}

	cmd.Flags().String("xlsx", "", "Workbook to load")
	cmd.Flags().String("sheet", "", "Worksheet of --xlsx, the first one by default")
	cmd.Flags().StringArray("set", nil, "Cell assignment ADDRESS=INPUT, repeatable")
	cmd.Flags().StringArray("formula", nil, "Formula evaluated against the loaded cells, repeatable")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print gridcalc version",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "gridcalc %s\n", Version)
		},
	}
}
