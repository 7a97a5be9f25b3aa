package user

import "fmt"

// DefaultName は名前が指定されなかった場合に利用するフォールバック名です。
const DefaultName = "Guest"

// User は表示名を保持するユーザーエンティティです。
// 生成後に名前が変更されることはありません。
type User struct {
	name string
}

// New は指定された名前で User を生成します。名前の検証は行いません。
func New(name string) User {
	return User{name: name}
}

// Create は User を生成するファクトリ関数です。New と同じ結果を返します。
func Create(name string) User {
	return New(name)
}

// Name はユーザーの表示名を返します。
func (u User) Name() string {
	return u.name
}

// Greet は "Hello, {name}!" 形式の挨拶文を返します。
func (u User) Greet() string {
	return fmt.Sprintf("Hello, %s!", u.name)
}
