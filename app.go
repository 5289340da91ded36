package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
)

type App struct {
	settings *Settings
	logger   *zap.Logger
	store    Store
	mailer   Mailer
	notifier Notifier
	metrics  *Metrics

	now func() time.Time
	out io.Writer
}

// NewApp builds an App around an opened store.
func NewApp(settings *Settings, logger *zap.Logger, store Store) (*App, error) {
	a := &App{
		settings: settings,
		logger:   logger,
		store:    store,
		now:      time.Now,
		out:      os.Stdout,
	}
	if err := a.wire(); err != nil {
		return nil, err
	}
	return a, nil
}

// Init loads settings, builds the logger and opens the store. It runs before
// every command.
func (a *App) Init(ctx context.Context, configFile string, debug bool) error {
	settings, err := LoadSettings(configFile)
	if err != nil {
		return err
	}
	if debug {
		settings.Debug = true
	}

	logger, err := NewLogger(settings.Log, settings.Debug)
	if err != nil {
		return err
	}

	store, err := OpenStore(ctx, settings.Store, logger)
	if err != nil {
		return err
	}

	a.settings, a.logger, a.store = settings, logger, store
	if a.now == nil {
		a.now = time.Now
	}
	if a.out == nil {
		a.out = os.Stdout
	}
	return a.wire()
}

// wire sets up the optional collaborators. Mail and notifications stay nil
// when they are not configured.
func (a *App) wire() error {
	metrics, err := NewMetrics()
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	a.metrics = metrics

	if a.settings.Mail.Enabled() {
		a.mailer = NewSMTPMailer(a.settings.Mail)
	}
	if len(a.settings.Notify.URLs) > 0 {
		n, err := NewShoutrrrNotifier(a.settings.Notify.URLs, a.settings.Notify.Timeout)
		if err != nil {
			return err
		}
		a.notifier = n
	}
	return nil
}

func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// AddEntry appends one entry dated today unless the input names a date.
func (a *App) AddEntry(ctx context.Context, in EntryInput) (Entry, error) {
	entry, err := NewEntry(in, a.now())
	if err != nil {
		return Entry{}, err
	}

	if err := a.store.Append(ctx, entry); err != nil {
		return Entry{}, fmt.Errorf("append entry: %w", err)
	}
	a.metrics.entriesAppended.WithLabelValues(a.store.Name()).Inc()

	a.logger.Info("entry saved",
		zap.String("date", entry.Date.Format(dateLayout)),
		zap.String("time_of_day", string(entry.TimeOfDay)),
		zap.Int("mood", entry.Mood),
		zap.Float64("sleep_hours", entry.SleepHours))

	if a.notifier != nil {
		title, msg := entrySavedMessage(entry)
		if err := a.notifier.Notify(ctx, title, msg); err != nil {
			a.logger.Warn("notification failed", zap.Error(err))
		}
	}

	return entry, nil
}

func (a *App) records(ctx context.Context) ([]Record, error) {
	records, err := a.store.Records(ctx)
	a.metrics.storeReads.WithLabelValues(result(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("read %s store: %w", a.store.Name(), err)
	}
	return records, nil
}

// MonthChart prepares the chart data of month.
func (a *App) MonthChart(ctx context.Context, month time.Time) (ChartData, error) {
	records, err := a.records(ctx)
	if err != nil {
		return ChartData{}, err
	}

	data := PrepareChart(records, month, a.settings.Chart.Style)
	if data.Dropped > 0 {
		a.metrics.droppedRows.Add(float64(data.Dropped))
		a.logger.Debug("rows dropped from chart",
			zap.Int("dropped", data.Dropped),
			zap.String("month", data.Month.Format("2006-01")))
	}
	return data, nil
}

// ChartImage renders month as png, svg or pdf.
func (a *App) ChartImage(ctx context.Context, month time.Time, format string) ([]byte, error) {
	data, err := a.MonthChart(ctx, month)
	if err != nil {
		return nil, err
	}
	return RenderChart(data, chartOptions(a.settings.Chart), format)
}

// ListEntries returns the entries of a display period around now.
func (a *App) ListEntries(ctx context.Context, period string) ([]Entry, error) {
	start, end, err := Window(period, a.now())
	if err != nil {
		return nil, err
	}
	records, err := a.records(ctx)
	if err != nil {
		return nil, err
	}
	return FilterWindow(records, start, end), nil
}

// Display prints the entries of a period as a table with the mood column in
// gradient colors and averages in the footer.
func (a *App) Display(ctx context.Context, period string) error {
	entries, err := a.ListEntries(ctx, period)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintf(a.out, "No entries this %s.\n", period)
		return nil
	}

	headers := []string{"Day", "Time", "Mood", "Sleep", "Notes"}

	var rows [][]string
	var moodSum, sleepSum float64

	var lastDay string
	for _, e := range entries {
		day := e.Date.Format("Jan 02, 2006")
		moodSum += float64(e.Mood)
		sleepSum += e.SleepHours

		// the day is printed once per group
		label := day
		if day == lastDay {
			label = ""
		}
		lastDay = day

		rows = append(rows, []string{
			label,
			string(e.TimeOfDay),
			FormatMood(e.Mood),
			FormatSleep(e.SleepHours),
			e.Note,
		})
	}

	n := float64(len(entries))
	footers := []string{"", "Average:", fmt.Sprintf("%+.1f", moodSum/n), FormatSleep(sleepSum / n), ""}
	PrintTable(a.out, headers, rows, footers, moodCellStyle(entries, 2))

	return nil
}

// AllEntries returns every parseable entry in chart order.
func (a *App) AllEntries(ctx context.Context) ([]Entry, error) {
	records, err := a.records(ctx)
	if err != nil {
		return nil, err
	}
	return FilterWindow(records, time.Time{}, time.Date(9999, 12, 31, 0, 0, 0, 0, time.Local)), nil
}

// Report renders the two page PDF report of month.
func (a *App) Report(ctx context.Context, month time.Time) ([]byte, error) {
	data, err := a.MonthChart(ctx, month)
	if err != nil {
		return nil, err
	}
	png, err := RenderChart(data, chartOptions(a.settings.Chart), "png")
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return BuildReport(data, png)
}

// SendReport mails the report of month to one recipient.
func (a *App) SendReport(ctx context.Context, month time.Time, to string) error {
	if a.mailer == nil {
		return ErrMailDisabled
	}

	err := a.sendReport(ctx, month, to)
	a.metrics.reportsSent.WithLabelValues(result(err)).Inc()
	if err != nil {
		return err
	}

	a.logger.Info("report sent", zap.String("month", month.Format("2006-01")), zap.String("to", to))
	return nil
}

func (a *App) sendReport(ctx context.Context, month time.Time, to string) error {
	pdf, err := a.Report(ctx, month)
	if err != nil {
		return err
	}
	msg, err := BuildReportMessage(a.settings.Mail.From, to, month, pdf)
	if err != nil {
		return err
	}
	return a.mailer.Send(ctx, msg)
}

// Import appends every entry served by another moodtick instance. Entries are
// append-only, so importing twice duplicates them.
func (a *App) Import(ctx context.Context, baseURL, month string) (int, error) {
	apiClient := NewAPIClient(baseURL)

	remote, err := apiClient.GetEntries(ctx, month)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, e := range remote {
		if _, err := a.AddEntry(ctx, e.Input()); err != nil {
			return imported, fmt.Errorf("import entry %s %s: %w", e.Date, e.TimeOfDay, err)
		}
		imported++
	}

	return imported, nil
}
