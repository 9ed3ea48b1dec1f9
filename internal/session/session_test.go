package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/prchecklist/internal/checklist"
	"github.com/sandeepkv93/prchecklist/internal/commands"
	"github.com/sandeepkv93/prchecklist/internal/model"
	"github.com/sandeepkv93/prchecklist/internal/notify"
	"github.com/sandeepkv93/prchecklist/internal/report"
)

type captureSink struct {
	texts []string
	err   error
}

func (c *captureSink) Write(text string) error {
	c.texts = append(c.texts, text)
	return c.err
}

func newSession(t *testing.T) (*Session, *captureSink, *notify.Recorder) {
	t.Helper()
	state := model.NewChecklistState([]model.CatalogEntry{
		{Index: 1, Title: "Wash dishes"},
		{Index: 2, Title: "Take out trash"},
	})
	sink := &captureSink{}
	rec := &notify.Recorder{}
	s := New(checklist.New("page", state, nil, nil), Options{Sink: sink, Notifier: rec})
	return s, sink, rec
}

func TestRunAppliesMutations(t *testing.T) {
	s, _, _ := newSession(t)
	ctx := context.Background()

	res, err := s.Run(ctx, "/done 1")
	require.NoError(t, err)
	assert.Equal(t, "chore 1 done", res.Message)

	res, err = s.Run(ctx, "na 2")
	require.NoError(t, err)
	assert.Equal(t, "chore 2 marked not applicable", res.Message)

	res, err = s.Run(ctx, "add Review tests")
	require.NoError(t, err)
	assert.Equal(t, "added chore 3: Review tests", res.Message)

	res, err = s.Run(ctx, "show")
	require.NoError(t, err)
	assert.Equal(t, "[x] 1. Wash dishes\n[-] 2. Take out trash\n[ ] 3. Review tests", res.Message)
}

func TestRunRejectsUnknownIndex(t *testing.T) {
	s, _, _ := newSession(t)
	_, err := s.Run(context.Background(), "done 9")
	var ce *commands.CommandError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, commands.ErrCodeInvalidArgument, ce.Code)
}

func TestSelectAllRefusedWhileExcluded(t *testing.T) {
	s, _, _ := newSession(t)
	ctx := context.Background()

	_, err := s.Run(ctx, "all")
	require.NoError(t, err)
	assert.Len(t, s.Checklist.View(model.StatusDone), 2)

	_, err = s.Run(ctx, "exclude 1")
	require.NoError(t, err)
	_, err = s.Run(ctx, "none")
	var ce *commands.CommandError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, commands.ErrCodeNotPermitted, ce.Code)
	assert.Len(t, s.Checklist.View(model.StatusDone), 1, "refused bulk action leaves state untouched")
}

func TestGenerateReportWritesSinkAndNotifies(t *testing.T) {
	s, sink, rec := newSession(t)
	ctx := context.Background()
	_, err := s.Run(ctx, "done 1")
	require.NoError(t, err)
	_, err = s.Run(ctx, "na 2")
	require.NoError(t, err)

	res, err := s.Run(ctx, "report")
	require.NoError(t, err)
	assert.Equal(t, CopiedMessage, res.Message)
	require.Len(t, sink.texts, 1)
	assert.Equal(t, report.Generate(s.Checklist, report.Options{}), sink.texts[0])
	assert.Contains(t, sink.texts[0], "| 1 | Wash dishes | Yes |")
	assert.Contains(t, sink.texts[0], "| 2 | Take out trash |")
	require.Len(t, rec.Sent, 1)
	assert.Equal(t, CopiedMessage, rec.Sent[0].Body)
}

func TestGenerateReportSinkFailureSkipsNotification(t *testing.T) {
	s, sink, rec := newSession(t)
	sink.err = errors.New("no clipboard")

	text, err := s.GenerateReport(context.Background())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(text, "-------------------"))
	assert.Empty(t, rec.Sent)
}

func TestBlankAddIsInvalidArgument(t *testing.T) {
	s, _, _ := newSession(t)
	err := func() error {
		_, err := s.Handlers(context.Background()).Add(commands.AddArgs{Title: "   "})
		return err
	}()
	var ce *commands.CommandError
	require.True(t, errors.As(err, &ce))
	assert.Len(t, s.Checklist.Items(), 2)
}

func TestSessionIDsAreUnique(t *testing.T) {
	a, _, _ := newSession(t)
	b, _, _ := newSession(t)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestReportDoesNotTouchSink(t *testing.T) {
	s, sink, rec := newSession(t)
	text := s.Report()
	assert.Contains(t, text, "### PR Checklist")
	assert.Empty(t, sink.texts)
	assert.Empty(t, rec.Sent)
}

func TestFormatPartitions(t *testing.T) {
	s, _, _ := newSession(t)
	_, err := s.Run(context.Background(), "done 2")
	require.NoError(t, err)

	assert.Equal(t, "[x] 2. Take out trash", s.Format("done"))
	assert.Equal(t, "[ ] 1. Wash dishes", s.Format("pending"))
	assert.Equal(t, "(no chores)", s.Format("na"))
}
