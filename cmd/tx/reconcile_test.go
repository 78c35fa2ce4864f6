package tx

import (
	"bytes"
	"testing"

	"github.com/paypost/go-paypost/internal/wallet/scan"
	"github.com/stretchr/testify/assert"
)

func TestPrintProgress(t *testing.T) {
	var buf bytes.Buffer
	printProgress(&buf, &scan.Progress{Checked: 4, Resolved: 2, Expired: 1, Pending: 1})

	assert.Equal(t, "Checked:  4\nResolved: 2\nExpired:  1\nPending:  1\nFailed:   0\n", buf.String())
}
