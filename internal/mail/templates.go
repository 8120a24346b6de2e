package mail

import (
	"bytes"
	htmltemplate "html/template"
	"net/url"
	"strings"
	texttemplate "text/template"
)

const verificationSubject = "Welcome to FoodHub - Verify Your Email"

var verificationText = texttemplate.Must(texttemplate.New("verify.txt").Parse(`Hello {{.Name}},

Welcome to FoodHub! Your account has been created, but we need to verify your email address. Open the link below to verify it:

{{.Link}}

If you didn't create an account with FoodHub, please ignore this email.

Bon appétit!

The FoodHub Team
`))

var verificationHTML = htmltemplate.Must(htmltemplate.New("verify.html").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Welcome to FoodHub</title></head>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f4f4f4;">
  <table role="presentation" style="width:100%;border-collapse:collapse;">
    <tr><td align="center" style="padding:40px 0;">
      <table role="presentation" style="width:600px;background-color:#ffffff;border-radius:8px;">
        <tr><td style="padding:40px 30px;text-align:center;background-color:#FF6347;border-radius:8px 8px 0 0;">
          <h1 style="color:#ffffff;font-size:28px;margin:0;">Welcome to FoodHub</h1>
        </td></tr>
        <tr><td style="padding:40px 30px;">
          <p style="font-size:18px;color:#333333;">Hello {{.Name}},</p>
          <p style="font-size:16px;color:#666666;line-height:1.5;">Your account has been created, but we need to verify your email address to get you started.</p>
          <p style="text-align:center;margin:30px 0;">
            <a href="{{.Link}}" style="display:inline-block;padding:14px 30px;background-color:#FF6347;color:#ffffff;text-decoration:none;font-size:18px;border-radius:4px;">Verify Your Email</a>
          </p>
          <p style="font-size:14px;color:#999999;">If you didn't create an account with FoodHub, please ignore this email.</p>
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>
`))

// VerificationLink points the frontend's verify page at token.
func VerificationLink(frontendURL, token string) string {
	return strings.TrimRight(frontendURL, "/") + "/account/verify-email?token=" + url.QueryEscape(token)
}

// VerificationEmail renders the welcome message carrying the verification link.
func VerificationEmail(frontendURL, to, name, token string) (Message, error) {
	data := struct {
		Name string
		Link string
	}{Name: name, Link: VerificationLink(frontendURL, token)}

	var text, html bytes.Buffer
	if err := verificationText.Execute(&text, data); err != nil {
		return Message{}, err
	}
	if err := verificationHTML.Execute(&html, data); err != nil {
		return Message{}, err
	}

	return Message{
		To:      to,
		Subject: verificationSubject,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
