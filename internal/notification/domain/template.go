package domain

import (
	"bytes"
	"fmt"
	"text/template"
)

// Template 按事件类型注册的通知模板。
// 正文是 text/template，渲染参数由触发方传入。
type Template struct {
	Subject string
	Body    string
}

// 各事件的邮件模板。措辞沿用运营团队现有邮件文案。
var templates = map[EventType]Template{
	EventUserRegistered: {
		Subject: "Verify Your Email",
		Body: "Hello {{.FullName}},\n\nThank you for registering. Please verify your email to activate your account:\n{{.VerifyURL}}\n\nIf you did not sign up, please ignore this email.",
	},
	EventPasswordReset: {
		Subject: "Password Reset Request",
		Body: "Hello {{.FullName}},\n\nWe received a request to reset your password. Use the link below within one hour:\n{{.ResetURL}}\n\nIf you did not request a reset, please ignore this email or contact support.",
	},
	EventDepositSubmitted: {
		Subject: "Deposit Request Submitted",
		Body: "Hello {{.FullName}},\n\nWe have received your deposit request of ${{.Amount}}. Our review team will verify it and update your wallet balance as soon as possible.",
	},
	EventDepositApproved: {
		Subject: "Deposit Request Approved",
		Body: "Hello {{.FullName}},\n\nYour deposit request of ${{.Amount}} has been approved and your wallet balance has been updated.",
	},
	EventDepositRejected: {
		Subject: "Deposit Request Rejected",
		Body: "Hello {{.FullName}},\n\nYour deposit request of ${{.Amount}} has been rejected.\nReason: {{.Note}}",
	},
	EventWithdrawalSubmitted: {
		Subject: "Withdrawal Request Submitted",
		Body: "Hello {{.FullName}},\n\nWe have received your withdrawal request of ${{.Amount}}. Our review team will process it as soon as possible.",
	},
	EventWithdrawalApproved: {
		Subject: "Withdrawal Request Approved",
		Body: "Hello {{.FullName}},\n\nYour withdrawal request of ${{.Amount}} has been approved. The funds will be transferred to your selected method shortly.",
	},
	EventWithdrawalRejected: {
		Subject: "Withdrawal Request Rejected",
		Body: "Hello {{.FullName}},\n\nWe regret to inform you that your withdrawal request of ${{.Amount}} has been rejected.\nReason: {{.Note}}",
	},
	EventKycApproved: {
		Subject: "KYC Document Approved",
		Body: "Hello {{.FullName}},\n\nYour KYC document ({{.DocumentType}}) has been approved successfully. Thank you for verifying your identity.",
	},
	EventKycRejected: {
		Subject: "KYC Document Rejected",
		Body: "Hello {{.FullName}},\n\nYour KYC document ({{.DocumentType}}) has been rejected.\nReason: {{.Note}}\nPlease review and resubmit your document if necessary.",
	},
	EventTicketReplied: {
		Subject: "New Reply to Your Support Ticket",
		Body: "Hello {{.FullName}},\n\nYou have received a new reply to your support ticket: {{.Subject}}.\nPlease log in to view and reply.",
	},
	EventTicketClosed: {
		Subject: "Support Ticket Closed",
		Body: "Hello {{.FullName}},\n\nYour support ticket \"{{.Subject}}\" has been closed. If the issue persists, feel free to open a new ticket.",
	},
}

// Resolve 查找事件模板
func Resolve(event EventType) (Template, bool) {
	t, ok := templates[event]
	return t, ok
}

// Render 渲染正文
func (t Template) Render(params map[string]any) (string, error) {
	tmpl, err := template.New("body").Parse(t.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}
