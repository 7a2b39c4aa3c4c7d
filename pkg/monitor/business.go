package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics 定义业务监控指标
type BusinessMetrics struct {
	UserRegisteredTotal    prometheus.Counter
	DepositConfirmedTotal  *prometheus.CounterVec
	DepositCreditedAmount  *prometheus.CounterVec
	WalletCreditFailures   prometheus.Counter
	EmailSentTotal         *prometheus.CounterVec
	EmailFailedTotal       *prometheus.CounterVec
	TicketOpenedTotal      prometheus.Counter
	KYCSubmittedTotal      prometheus.Counter
	WalletCopyTrackedTotal *prometheus.CounterVec
}

// Global Metrics Instance
var Business *BusinessMetrics

// InitBusinessMetrics 初始化业务指标
func InitBusinessMetrics() {
	Business = &BusinessMetrics{
		UserRegisteredTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_user_registered_total",
			Help: "The total number of registered users",
		}),
		DepositConfirmedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_deposit_confirmed_total",
			Help: "The total number of confirmed deposits",
		}, []string{"coin"}),
		DepositCreditedAmount: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_deposit_credited_amount_total",
			Help: "The total USD amount credited to wallets",
		}, []string{"coin"}),
		WalletCreditFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_wallet_credit_failures_total",
			Help: "Confirmed deposits whose wallet credit failed (operator alert)",
		}),
		EmailSentTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_email_sent_total",
			Help: "The total number of emails sent",
		}, []string{"kind"}),
		EmailFailedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_email_failed_total",
			Help: "The total number of email delivery failures",
		}, []string{"kind"}),
		TicketOpenedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_support_ticket_opened_total",
			Help: "The total number of support tickets opened",
		}),
		KYCSubmittedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_kyc_submitted_total",
			Help: "The total number of KYC submissions",
		}),
		WalletCopyTrackedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_wallet_copy_tracked_total",
			Help: "Wallet address copy events",
		}, []string{"coin"}),
	}
}
