package user

const defaultUserName = "Alice"

// Service はユーザーに関するユースケースをまとめます。状態は持ちません。
type Service struct{}

// UseCase はユーザーユースケースの公開インターフェースです。
type UseCase interface {
	GetUser() User
	ProcessUser(u User) string
}

// NewService は Service を生成します。
func NewService() *Service {
	return &Service{}
}

// GetUser は既定のユーザーを返します。
func (s *Service) GetUser() User {
	return Create(defaultUserName)
}

// ProcessUser は渡されたユーザーの挨拶文をそのまま返します。
func (s *Service) ProcessUser(u User) string {
	return u.Greet()
}
