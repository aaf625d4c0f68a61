package notify

import (
	"fmt"
	"html"
)

// Message bodies are small HTML fragments wrapped in a shared frame. The
// frame and the blockquote id highlight follow the shape of the mails the
// marketplace has always sent, so existing mail filters keep matching.

func wrapBody(title, content string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; color: #333;">
  <div style="padding: 20px; background-color: #f9f9f9; border-radius: 8px; max-width: 600px; margin: auto;">
    <h2 style="color: #222;">%s</h2>
    <p style="font-size: 16px; line-height: 1.6;">%s</p>
  </div>
  <div style="font-size: 12px; color: #777; padding: 20px; text-align: center;">
    <hr style="margin: 20px 0;">
    <p>This message was generated automatically. Please do not reply.</p>
  </div>
</div>`, html.EscapeString(title), content)
}

func idBlockquote(id string) string {
	return fmt.Sprintf(`<blockquote style="background-color: #f0f4ff; border-left: 4px solid #3399ff; padding: 10px 15px; margin: 10px 0; font-family: monospace; color: #003366;">%s</blockquote>`,
		html.EscapeString(id))
}

func createdBody(fullname, email, role string) string {
	return fmt.Sprintf("A new employee account has been created:<br><strong>Name:</strong> %s<br><strong>Email:</strong> %s<br><strong>Role:</strong> %s",
		html.EscapeString(fullname), html.EscapeString(email), html.EscapeString(role))
}

func softDeletedBody(id string) string {
	return "The following account has been soft-deleted:<br>" + idBlockquote(id)
}

func restoredBody(id string) string {
	return "The following account has been restored:<br>" + idBlockquote(id)
}

func destroyedBody(id string) string {
	return "The following account has been permanently deleted:<br>" + idBlockquote(id)
}

func roleChangedBody(id, oldRole, newRole string) string {
	return fmt.Sprintf("The following account changed its role from %q to %q:<br>%s",
		html.EscapeString(oldRole), html.EscapeString(newRole), idBlockquote(id))
}
