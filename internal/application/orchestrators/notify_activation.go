package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"communityaction/internal/adapters/email"
	"communityaction/internal/domain/program"
)

// NotifyActivationDeps holds the email sender for the activation notice.
type NotifyActivationDeps struct {
	Sender email.Sender
}

// ExecuteNotifyActivation emails the operator after the first-activation
// seed has run. Delivery failure is logged, not fatal: the plugin is
// functional whether or not the notice arrives.
// PRE: deps.Sender is non-nil; adminEmail is the operator's address
// POST: A notification send was attempted
func ExecuteNotifyActivation(ctx context.Context, deps NotifyActivationDeps, adminEmail string) {
	body := fmt.Sprintf(
		"<p>Thank you for activating the Community Action plugin.</p>"+
			"<p>The default program %q has been created. "+
			"Visit the manage-programs page to add your own programs.</p>",
		program.DefaultName,
	)
	_, err := deps.Sender.Send(ctx, email.SendRequest{
		To:      []string{adminEmail},
		Subject: "Community Action plugin activated",
		HTML:    body,
	})
	if err != nil {
		slog.Warn("activation_notice_failed", "error", err, "to", adminEmail)
		return
	}
	slog.Info("activation_notice_sent", "to", adminEmail)
}
