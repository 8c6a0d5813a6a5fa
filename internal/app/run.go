package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/rulesmith/internal/ctxlog"
	"github.com/specialistvlad/rulesmith/internal/publish"
)

// Run loads the rule set, writes the report and, if configured, publishes it.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	catalog, err := a.Load(ctx)
	if err != nil {
		return err
	}
	report := catalog.Report()

	switch a.config.Output {
	case "json":
		err = report.WriteJSON(a.outW)
	case "text":
		err = report.WriteText(a.outW)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if a.config.Publish.Enabled() {
		ack, err := publish.New(a.config.Publish).Publish(ctx, report)
		if err != nil {
			return fmt.Errorf("failed to publish report: %w", err)
		}
		if ack != nil {
			a.logger.Info("Report acknowledged.", "ack", ack)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
