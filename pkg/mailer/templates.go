package mailer

import (
	"bytes"
	"text/template"
)

var depositConfirmedTmpl = template.Must(template.New("deposit_confirmed").Parse(`<html>
<body>
  <h2>Deposit Confirmed</h2>
  <p>Hi {{.Name}},</p>
  <p>Your {{.CoinDisplay}} deposit of {{.Amount}} has been confirmed and credited to your wallet.</p>
  <p>Deposit reference: #{{.DepositID}}</p>
  <p><a href="{{.SiteURL}}/dashboard">View your dashboard</a></p>
  <p>Best regards,<br>Vault Ledger Team</p>
</body>
</html>`))

var walletCopyTmpl = template.Must(template.New("wallet_copy").Parse(`<html>
<body>
  <h2>Wallet Address Copied</h2>
  <p>User <b>{{.Username}}</b> ({{.Email}}) copied the {{.CoinDisplay}} receiving address.</p>
  <ul>
    <li>Address: {{.Address}}</li>
    <li>IP: {{.IP}}</li>
    <li>User-Agent: {{.UserAgent}}</li>
    <li>Time: {{.CopiedAt}}</li>
  </ul>
</body>
</html>`))

var passwordResetTmpl = template.Must(template.New("password_reset").Parse(`<html>
<body>
  <p>Hi {{.Name}},</p>
  <p>You have requested to reset your password for Vault Ledger.</p>
  <p><a href="{{.ResetURL}}">Click here to reset your password</a></p>
  <p>This link will expire in 24 hours for security reasons.</p>
  <p>If you did not request this password reset, please ignore this email.</p>
  <p>Best regards,<br>Vault Ledger Team</p>
</body>
</html>`))

// DepositConfirmedBody 渲染充值确认邮件正文
func DepositConfirmedBody(name, coinDisplay, amount string, depositID uint64, siteURL string) string {
	var buf bytes.Buffer
	_ = depositConfirmedTmpl.Execute(&buf, map[string]interface{}{
		"Name":        name,
		"CoinDisplay": coinDisplay,
		"Amount":      amount,
		"DepositID":   depositID,
		"SiteURL":     siteURL,
	})
	return buf.String()
}

// WalletCopyBody 渲染地址复制告警邮件正文
func WalletCopyBody(username, email, coinDisplay, address, ip, userAgent, copiedAt string) string {
	var buf bytes.Buffer
	_ = walletCopyTmpl.Execute(&buf, map[string]interface{}{
		"Username":    username,
		"Email":       email,
		"CoinDisplay": coinDisplay,
		"Address":     address,
		"IP":          ip,
		"UserAgent":   userAgent,
		"CopiedAt":    copiedAt,
	})
	return buf.String()
}

// PasswordResetBody 渲染密码重置邮件正文
func PasswordResetBody(name, resetURL string) string {
	var buf bytes.Buffer
	_ = passwordResetTmpl.Execute(&buf, map[string]interface{}{
		"Name":     name,
		"ResetURL": resetURL,
	})
	return buf.String()
}
