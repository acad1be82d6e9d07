package config

import "time"

type Config struct {
	Web     Web
	DB      DB
	Cors    Cors
	Rate    Rate
	Payment Payment
	Stripe  Stripe
	Paypal  Paypal
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type DB struct {
	URI            string        `conf:"default:mongodb://localhost:27017/?replicaSet=rs0,mask"`
	Name           string        `conf:"default:melody-institute"`
	ConnectTimeout time.Duration `conf:"default:10s"`
	Migrate        bool          `conf:"default:true"`
}

type Cors struct {
	Origin string `conf:"default:*"`
}

// Rate limits requests per client IP. A Burst of 0 disables the limiter.
type Rate struct {
	Burst    int     `conf:"default:20"`
	LimitRPS float64 `conf:"default:10"`
	Expiry   int     `conf:"default:10"`
}

type Payment struct {
	Provider string `conf:"default:stripe"`
	Currency string `conf:"default:usd"`
}

type Stripe struct {
	APISecret string `conf:"mask"`
}

type Paypal struct {
	ClientID string
	Secret   string `conf:"mask"`
	URL      string `conf:"default:https://api-m.sandbox.paypal.com"`
}
