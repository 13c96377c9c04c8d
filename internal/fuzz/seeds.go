package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

// inlineSeeds cover every token class and each lexical error path.
var inlineSeeds = []string{
	"",
	"func f(int n) { return n * f(n - 1); }\n",
	"float x = -1.5e-3; int y = +7;",
	`string s = "a\tb\"c\\";`,
	"if (a >= b && !c || d != e) { } else-if (x <= y) { } else { }",
	"# line\n** block\nstill block ** z",
	"** unclosed block",
	"\"unterminated\nnext",
	"\"bad \\q escape\"",
	"$ _ € \r & |",
	"{{{ }}} } {",
	"n-1 n - 1 1e 1.5.5",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.zr файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".zr" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
