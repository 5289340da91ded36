package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/nexidian/gocliselect"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var periods = []string{"day", "week", "month", "year"}

func SetupCommands(a *App) *cobra.Command {
	var (
		configFile string
		debug      bool
	)

	// root command
	rootCmd := &cobra.Command{
		Use:           "moodtick",
		Short:         "A personal mood journal with a monthly chart",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.Init(cmd.Context(), configFile, debug)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/moodtick/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// command for serving the web form
	var listen string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the journal form and chart over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen == "" {
				listen = a.settings.Server.Listen
			}
			srv, err := NewServer(a, listen)
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}
	serveCmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config, :8080)")

	// command for adding an entry
	var in EntryInput
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a mood entry for today",
		RunE: func(cmd *cobra.Command, args []string) error {
			interactive := isatty.IsTerminal(os.Stdin.Fd())
			if in.TimeOfDay == "" {
				if !interactive {
					return fmt.Errorf("--time is required when stdin is not a terminal")
				}
				tod, err := promptTimeOfDay()
				if err != nil {
					return err
				}
				in.TimeOfDay = tod
			}
			if !cmd.Flags().Changed("note") && interactive {
				in.Note = promptNote()
			}

			entry, err := a.AddEntry(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Entry saved: %s %s, mood %s, slept %s\n",
				entry.Date.Format(dateLayout), entry.TimeOfDay, FormatMood(entry.Mood), FormatSleep(entry.SleepHours))
			return nil
		},
	}
	addCmd.Flags().StringVarP(&in.TimeOfDay, "time", "t", "", "time of day: Morning or Evening")
	addCmd.Flags().IntVarP(&in.Mood, "mood", "m", 0, "mood from -4 to +4")
	addCmd.Flags().Float64VarP(&in.SleepHours, "sleep", "s", 0, "hours slept")
	addCmd.Flags().StringVarP(&in.Note, "note", "n", "", "optional note")
	addCmd.Flags().StringVar(&in.Date, "date", "", "entry date, YYYY-MM-DD (default today)")

	// command for listing entries of a period
	listCmd := &cobra.Command{
		Use:       "list [day|week|month|year]",
		Short:     "List entries of a period",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: periods,
		RunE: func(cmd *cobra.Command, args []string) error {
			period := "month"
			if len(args) > 0 {
				period = args[0]
			}
			return a.Display(cmd.Context(), period)
		},
	}

	// command for rendering the month chart to a file
	var chartMonth, chartOut string
	chartCmd := &cobra.Command{
		Use:   "chart",
		Short: "Render the month chart to a png, svg or pdf file",
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := ParseMonth(chartMonth, a.now())
			if err != nil {
				return err
			}
			if chartOut == "" {
				chartOut = "mood-" + month.Format("2006-01") + ".png"
			}
			format := strings.TrimPrefix(strings.ToLower(filepath.Ext(chartOut)), ".")
			img, err := a.ChartImage(cmd.Context(), month, format)
			if err != nil {
				return err
			}
			if err := os.WriteFile(chartOut, img, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Chart written to %s\n", chartOut)
			return nil
		},
	}
	chartCmd.Flags().StringVar(&chartMonth, "month", "", "month to chart, YYYY-MM (default current)")
	chartCmd.Flags().StringVarP(&chartOut, "out", "o", "", "output file, format from extension")

	// command for building or mailing the pdf report
	var reportMonth, reportOut, reportTo string
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Build the month's PDF report and save or email it",
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := ParseMonth(reportMonth, a.now())
			if err != nil {
				return err
			}
			if reportTo != "" {
				if err := a.SendReport(cmd.Context(), month, reportTo); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Report sent to %s\n", reportTo)
				return nil
			}

			if reportOut == "" {
				reportOut = reportFilename(month)
			}
			pdf, err := a.Report(cmd.Context(), month)
			if err != nil {
				return err
			}
			if err := os.WriteFile(reportOut, pdf, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Report written to %s\n", reportOut)
			return nil
		},
	}
	reportCmd.Flags().StringVar(&reportMonth, "month", "", "report month, YYYY-MM (default current)")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "output file (default mood-report-YYYY-MM.pdf)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "email the report to this address instead of saving it")

	// command for importing entries from another instance
	var importMonth string
	importCmd := &cobra.Command{
		Use:   "import [url]",
		Short: "Import entries from another moodtick server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.Import(cmd.Context(), args[0], importMonth)
			if err != nil {
				a.logger.Warn("import stopped", zap.Int("imported", n), zap.Error(err))
				return err
			}
			fmt.Fprintf(a.out, "Imported %d entries.\n", n)
			return nil
		},
	}
	importCmd.Flags().StringVar(&importMonth, "month", "", "only import this month, YYYY-MM")

	// add commands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(importCmd)

	return rootCmd
}

func promptTimeOfDay() (string, error) {
	menu := gocliselect.NewMenu("Time of day")
	menu.AddItem("Morning", string(Morning))
	menu.AddItem("Evening", string(Evening))
	return menuChoice(menu.Display())
}

// menuChoice unwraps the id of the selected menu item.
func menuChoice(choice any, err error) (string, error) {
	if err != nil {
		return "", fmt.Errorf("time of day not selected: %w", err)
	}
	s, ok := choice.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%w: menu returned %v", ErrInvalidTimeOfDay, choice)
	}
	return s, nil
}

func promptNote() string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Enter a note (press Enter to skip): ")
	note, _ := reader.ReadString('\n')
	return strings.TrimSpace(note)
}
