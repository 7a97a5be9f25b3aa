package hello

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ogurasousui/codex-user-greeter/internal/core/user"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Greeter は挨拶文を生成するユースケースのインターフェースを定義します。
type Greeter interface {
	// SayHello は指定された名前のユーザーへの挨拶を生成します。
	// 名前が空白のみの場合は user.DefaultName を利用します。
	SayHello(ctx context.Context, in SayHelloInput) (*Greeting, error)
	DefaultUser(ctx context.Context) (user.User, error)
	ListGreetings(ctx context.Context, in ListGreetingsInput) ([]*Greeting, error)
}

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// SayHelloInput は挨拶生成時の入力です。
type SayHelloInput struct {
	Name string
}

// ListGreetingsInput は履歴取得時の入力です。
type ListGreetingsInput struct {
	Limit int
}

// Service は Greeter ユースケースのデフォルト実装です。
type Service struct {
	users   user.UseCase
	journal Journal
	clock   Clock
	newID   func() string
}

// NewService は Greeter ユースケースの新しいインスタンスを返します。
// journal が nil の場合、挨拶は記録されません。
func NewService(users user.UseCase, journal Journal, clock Clock) *Service {
	if users == nil {
		users = user.NewService()
	}
	if clock == nil {
		clock = realClock{}
	}
	return &Service{
		users:   users,
		journal: journal,
		clock:   clock,
		newID:   uuid.NewString,
	}
}

// SayHello は挨拶文を生成し、履歴が有効であれば記録します。
func (s *Service) SayHello(ctx context.Context, in SayHelloInput) (*Greeting, error) {
	name := in.Name
	if strings.TrimSpace(name) == "" {
		name = user.DefaultName
	}

	u := user.Create(name)
	g := &Greeting{
		ID:        s.newID(),
		Name:      u.Name(),
		Message:   s.users.ProcessUser(u),
		CreatedAt: s.clock.Now(),
	}

	if s.journal == nil {
		return g, nil
	}

	recorded, err := s.journal.Record(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("hello: record greeting: %w", err)
	}
	return recorded, nil
}

// DefaultUser は既定のユーザーを返します。
func (s *Service) DefaultUser(ctx context.Context) (user.User, error) {
	return s.users.GetUser(), nil
}

// ListGreetings は記録済みの挨拶を新しい順に返します。
func (s *Service) ListGreetings(ctx context.Context, in ListGreetingsInput) ([]*Greeting, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}

	limit, err := normalizeLimit(in.Limit)
	if err != nil {
		return nil, err
	}

	return s.journal.ListRecent(ctx, limit)
}

func normalizeLimit(limit int) (int, error) {
	if limit <= 0 {
		return defaultListLimit, nil
	}
	if limit > maxListLimit {
		return 0, ErrInvalidLimit
	}
	return limit, nil
}
