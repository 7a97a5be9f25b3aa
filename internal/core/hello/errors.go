package hello

import "errors"

var (
	// ErrInvalidLimit は取得件数が上限を超える場合に返却されます。
	ErrInvalidLimit = errors.New("invalid limit")
	// ErrJournalDisabled は挨拶履歴が無効な状態で参照された場合に返却されます。
	ErrJournalDisabled = errors.New("greeting journal is disabled")
	// ErrGreetingAlreadyExists は同じ ID の挨拶が記録済みの場合に返却されます。
	ErrGreetingAlreadyExists = errors.New("greeting already exists")
)
