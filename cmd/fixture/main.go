package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ogurasousui/codex-user-greeter/internal/core/user"
)

func main() {
	if err := run(os.Stdout); err != nil {
		log.Fatalf("failed to write greetings: %v", err)
	}
}

func run(w io.Writer) error {
	// 直接生成
	bob := user.New("Bob")
	if _, err := fmt.Fprintln(w, bob.Greet()); err != nil {
		return err
	}

	// ファクトリ経由
	charlie := user.Create("Charlie")
	if _, err := fmt.Fprintln(w, charlie.Greet()); err != nil {
		return err
	}

	svc := user.NewService()
	alice := svc.GetUser()
	if _, err := fmt.Fprintln(w, svc.ProcessUser(alice)); err != nil {
		return err
	}

	return nil
}
