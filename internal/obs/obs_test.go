package obs

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger_ParsesLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "debug")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestNewLogger_FallsBackToInfoOnBadLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "not-a-level")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestEntryWithRun_TagsRunID(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "info")
	entry := EntryWithRun(log, "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	entry.Info("hello")
	assert.Contains(t, buf.String(), "01ARZ3NDEKTSV4RRFFQ69G5FAV")
}
