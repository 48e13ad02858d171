package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"tripsplit-backend/config"
	"tripsplit-backend/models"
)

// SendEditorInvite emails a user when they are granted editor access to a
// trip. Skipped silently when SendGrid is unconfigured or the user never
// supplied an email address.
func SendEditorInvite(editor models.User, inviter string, trip models.Trip) {
	if config.AppConfig.SendGridAPIKey == "" {
		log.Printf("⚠️  SendGrid API key not set, skipping email to %s", editor.Username)
		return
	}
	if editor.Email == "" {
		return
	}

	subject := fmt.Sprintf("%s made you an editor on %s", inviter, tripLabel(trip))
	plain := fmt.Sprintf("%s made you an editor on %s. You can now add people, expenses and debts to it.", inviter, tripLabel(trip))
	htmlBody := buildEditorInviteHTML(editor.Username, inviter, tripLabel(trip))

	from := mail.NewEmail(config.AppConfig.AppName, config.AppConfig.SendGridFrom)
	to := mail.NewEmail(editor.Username, editor.Email)
	message := mail.NewSingleEmail(from, subject, to, plain, htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("❌ Email send error: %v", err)
		return
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		log.Printf("✅ Email sent to %s", editor.Email)
	} else {
		log.Printf("⚠️  SendGrid returned status: %d", resp.StatusCode)
	}
}

func tripLabel(trip models.Trip) string {
	if trip.Destination == "" {
		return "a trip"
	}
	return fmt.Sprintf("the trip to %s", trip.Destination)
}

func buildEditorInviteHTML(editorName, inviterName, trip string) string {
	tmpl := `
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
	<div style="background: white; border-radius: 12px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
		<h2 style="color: #1DB954; margin-top: 0;">✈️ You're an editor now!</h2>
		<p>Hi <strong>{{.EditorName}}</strong>,</p>
		<p><strong>{{.InviterName}}</strong> made you an editor on <strong>{{.Trip}}</strong>.</p>
		<p>You can now add people, expenses and debts to the trip.</p>
		<p style="color: #999; font-size: 12px; margin-top: 24px;">— {{.AppName}}</p>
	</div>
</body>
</html>`

	t, _ := template.New("editor-invite").Parse(tmpl)
	var buf bytes.Buffer
	t.Execute(&buf, map[string]interface{}{
		"EditorName":  editorName,
		"InviterName": inviterName,
		"Trip":        trip,
		"AppName":     config.AppConfig.AppName,
	})
	return buf.String()
}
