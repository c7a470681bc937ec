package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		accountsRegisteredTotal,
		activationCodesIssuedTotal,
		accountsActivatedTotal,
		redemptionFailuresTotal,
		activationCodesSweptTotal,
	)
}

var (
	accountsRegisteredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "accounts_registered_total",
			Help: "Total number of new accounts registered.",
		},
	)

	activationCodesIssuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "activation_codes_issued_total",
			Help: "Total number of activation codes issued (including replacements).",
		},
	)

	accountsActivatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "accounts_activated_total",
			Help: "Total number of accounts activated by a successful redemption.",
		},
	)

	redemptionFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redemption_failures_total",
			Help: "Failed redemption attempts by reason.",
		},
		[]string{"reason"},
	)

	activationCodesSweptTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "activation_codes_swept_total",
			Help: "Expired activation codes removed by the maintenance sweep.",
		},
	)
)

func IncAccountRegistered() {
	accountsRegisteredTotal.Inc()
}

func IncCodeIssued() {
	activationCodesIssuedTotal.Inc()
}

func IncAccountActivated() {
	accountsActivatedTotal.Inc()
}

func IncRedemptionFailure(reason string) {
	redemptionFailuresTotal.WithLabelValues(norm(reason)).Inc()
}

func AddCodesSwept(n int64) {
	activationCodesSweptTotal.Add(float64(n))
}
