package hello

import "context"

// Journal は挨拶履歴の永続化を行うインターフェースです。
type Journal interface {
	Record(ctx context.Context, g *Greeting) (*Greeting, error)
	// ListRecent は新しい順に最大 limit 件の履歴を返します。
	ListRecent(ctx context.Context, limit int) ([]*Greeting, error)
}
