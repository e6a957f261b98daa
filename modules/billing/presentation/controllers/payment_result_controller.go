package controllers

import (
	"html/template"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/plexdi/studio/pkg/application"
	"github.com/plexdi/studio/pkg/composables"
)

type PaymentResultControllerConfig struct {
	// SuccessPath and CancelPath must match the return URLs registered
	// with the payment provider.
	SuccessPath string
	CancelPath  string
	App         application.Application
}

// PaymentResultController serves the landing pages the payment provider
// redirects back to after a hosted checkout finishes or is abandoned.
type PaymentResultController struct {
	successPath string
	cancelPath  string
	app         application.Application
}

func NewPaymentResultController(cfg PaymentResultControllerConfig) application.Controller {
	successPath := cfg.SuccessPath
	if successPath == "" {
		successPath = "/payments/success"
	}
	cancelPath := cfg.CancelPath
	if cancelPath == "" {
		cancelPath = "/payments/cancel"
	}
	return &PaymentResultController{
		successPath: successPath,
		cancelPath:  cancelPath,
		app:         cfg.App,
	}
}

func (c *PaymentResultController) Key() string {
	return "PaymentResultController"
}

func (c *PaymentResultController) Register(r *mux.Router) {
	r.HandleFunc(c.successPath, c.success).Methods(http.MethodGet)
	r.HandleFunc(c.cancelPath, c.cancel).Methods(http.MethodGet)
}

var resultPage = template.Must(template.New("result").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} — Plexdi Studio</title>
</head>
<body>
<main>
<p>Payment Status</p>
<h1>{{.Heading}}</h1>
<p>{{.Message}}</p>
<nav>
<a href="/">Back to Home</a>
<a href="/commissions">Submit another commission</a>
</nav>
<p><small>{{.Footnote}}</small></p>
</main>
</body>
</html>
`))

type resultPageData struct {
	Title    string
	Heading  string
	Message  string
	Footnote string
}

func (c *PaymentResultController) render(w http.ResponseWriter, r *http.Request, data resultPageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := resultPage.Execute(w, data); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to render payment result page")
	}
}

func (c *PaymentResultController) success(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, resultPageData{
		Title:    "Payment Successful",
		Heading:  "Payment Successful",
		Message:  "Thank you for supporting Plexdi Studio. Your payment has been received and your commission is now in the queue. You'll receive an email shortly with a summary of your commission details.",
		Footnote: "If you think something went wrong with your payment, please contact support via email or Discord with your details.",
	})
}

func (c *PaymentResultController) cancel(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, resultPageData{
		Title:    "Payment Cancelled",
		Heading:  "Payment Cancelled",
		Message:  "Your payment was cancelled and you have not been charged. Your commission request was not submitted; you can try again whenever you're ready.",
		Footnote: "If you cancelled by mistake, just submit the commission form again.",
	})
}
