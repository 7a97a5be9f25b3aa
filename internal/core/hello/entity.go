package hello

import "time"

// Greeting は生成された挨拶の履歴エントリです。
type Greeting struct {
	ID        string
	Name      string
	Message   string
	CreatedAt time.Time
}
