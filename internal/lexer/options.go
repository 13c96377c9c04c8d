package lexer

import (
	"zara/internal/diag"
)

type Options struct {
	// Reporter может быть nil — тогда ошибки только копятся в Errors()
	Reporter diag.Reporter
}
