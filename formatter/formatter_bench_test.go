package formatter

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/robinvdvleuten/osalex/lexer"
)

const benchScript = `on run argv
	repeat with i from 1 to 10
		if i mod 2 = 0 then
			log i -- even
		else
			log (i * 2.5)
		end if
	end repeat
end run
`

func BenchmarkFormat(b *testing.B) {
	data := []byte(strings.Repeat(benchScript, 200))
	seq, err := lexer.Tokenize(context.Background(), "bench", data)
	if err != nil {
		b.Fatal(err)
	}

	fmtr := New()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := fmtr.Format(context.Background(), seq, io.Discard); err != nil {
			b.Fatal(err)
		}
	}
}
