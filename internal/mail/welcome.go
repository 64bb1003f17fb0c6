package mail

import (
	"fmt"
	"html"
	"strings"
)

// WelcomeSubject is the fixed subject line for signup confirmations.
const WelcomeSubject = "Convergence Matrix: Position Registered — Locus"

// welcomeHTML is the branded shell for the confirmation mail. Body paragraphs
// are injected pre-escaped.
const welcomeHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family:'JetBrains Mono','Courier New',monospace;background:#ffffff;color:#000000;padding:40px;line-height:1.6;">
  <div style="max-width:600px;margin:0 auto;padding:40px;border:1px solid #e0e0e0;">
    <div style="font-size:.7rem;color:#666;text-align:center;margin-bottom:30px;">LOCUS.NETWORK</div>
    <div style="font-size:2rem;font-weight:200;text-align:center;letter-spacing:8px;margin-bottom:20px;">LOCUS</div>
    <div style="font-size:.9rem;color:#333;margin:20px 0;">%s,</div>
    <div style="font-size:.9rem;color:#333;margin:20px 0;">%s</div>
    <div style="font-size:.9rem;color:#333;margin:20px 0;">We evaluate each coordinate set against our convergence criteria. Those whose trajectories align with the network's vector field will receive direct communication regarding access protocols.</div>
    <div style="margin-top:30px;font-size:.8rem;color:#999;">Under evaluation<br>— Locus</div>
    <div style="font-size:.7rem;color:#666;text-align:center;margin-top:40px;padding-top:20px;border-top:1px solid #e0e0e0;">This email was sent to %s who requested access to Locus.<br>Reply anytime with questions or thoughts.</div>
  </div>
</body>
</html>`

// WelcomeContent builds the subject, HTML body, and plain-text body of the
// signup confirmation. The wording changes slightly when the applicant
// listed cities.
func WelcomeContent(name, cities string) (subject, htmlBody, textBody string) {
	plotted := "Your position in the convergence matrix has been plotted."
	if strings.TrimSpace(cities) != "" {
		plotted += fmt.Sprintf(" Movement patterns across %s noted.", cities)
	} else {
		plotted += " Geographic mobility patterns noted."
	}

	audience := "a mobile professional"
	if strings.TrimSpace(cities) != "" {
		audience = fmt.Sprintf("someone who frequents %s", cities)
	}

	htmlBody = fmt.Sprintf(welcomeHTML,
		html.EscapeString(name),
		html.EscapeString(plotted),
		html.EscapeString(audience),
	)

	textBody = fmt.Sprintf(`LOCUS

%s,

%s

We evaluate each coordinate set against our convergence criteria. Those whose trajectories align with the network's vector field will receive direct communication regarding access protocols.

Under evaluation
— Locus
`, name, plotted)

	return WelcomeSubject, htmlBody, textBody
}

// MagicLinkContent builds the admin sign-in mail around the given link.
func MagicLinkContent(link string) (subject, htmlBody, textBody string) {
	subject = "Your Locus sign-in link"
	htmlBody = fmt.Sprintf(
		`<p>Follow this link to sign in to the Locus dashboard:</p><p><a href="%s">%s</a></p><p>The link is valid once and expires shortly.</p>`,
		html.EscapeString(link), html.EscapeString(link),
	)
	textBody = fmt.Sprintf("Follow this link to sign in to the Locus dashboard:\n\n%s\n\nThe link is valid once and expires shortly.\n", link)
	return subject, htmlBody, textBody
}
