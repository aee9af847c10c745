package shell

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fin-sh/fin/log"
)

func init() {
	// Tests exercise the warning path for malformed payloads.
	log.Initialize()
}

func collectDispatched(t *testing.T, b *Bridge, buf []byte) []Event {
	t.Helper()
	var got []Event
	b.dispatch(buf, func(e Event) { got = append(got, e) })
	return got
}

func TestDispatch_SingleEvent(t *testing.T) {
	b := &Bridge{}
	buf, err := json.Marshal(Event{Kind: KindCd, Dir: "/tmp"})
	require.NoError(t, err)

	got := collectDispatched(t, b, buf)

	require.Len(t, got, 1)
	assert.Equal(t, KindCd, got[0].Kind)
	assert.Equal(t, "/tmp", got[0].Dir)
}

func TestDispatch_MultipleWritersRacedOnTheFifo(t *testing.T) {
	// Two processes can write before the reader drains, so one read may
	// return several concatenated JSON documents.
	b := &Bridge{}
	buf := []byte(`{"kind":"pid","pid":4242}` + "\n" + `{"kind":"cd","dir":"/home"}` + "\n")

	got := collectDispatched(t, b, buf)

	require.Len(t, got, 2)
	assert.Equal(t, KindPid, got[0].Kind)
	assert.Equal(t, KindCd, got[1].Kind)
}

func TestDispatch_PidEventAttachesShell(t *testing.T) {
	b := &Bridge{}
	require.Equal(t, 0, b.Pid())

	buf := []byte(`{"kind":"pid","pid":4242}`)
	got := collectDispatched(t, b, buf)

	// The pid is stored and the event is still forwarded.
	assert.Equal(t, 4242, b.Pid())
	require.Len(t, got, 1)
	assert.Equal(t, 4242, got[0].Pid)
}

func TestDispatch_MalformedPayloadDiscarded(t *testing.T) {
	b := &Bridge{}
	got := collectDispatched(t, b, []byte(`{"kind":"pid","pid":`))
	assert.Empty(t, got)
}

func TestDispatch_MalformedTailKeepsEarlierEvents(t *testing.T) {
	b := &Bridge{}
	buf := []byte(`{"kind":"exit"}` + "\n" + `garbage`)

	got := collectDispatched(t, b, buf)

	require.Len(t, got, 1)
	assert.Equal(t, KindExit, got[0].Kind)
}

func TestRun_NoShellAttachedIsSilentNoop(t *testing.T) {
	b := &Bridge{}

	// Without an attached pid the command is dropped, not queued: no error,
	// no signal, no fifo write.
	err := b.Run("cp -r", []string{"a", "b"}, true)
	assert.NoError(t, err)
}

func TestRenderCommand_AppendsQuotedArgs(t *testing.T) {
	got := renderCommand("cp -r", []string{"a file.txt", "/dest"})
	assert.Equal(t, `cp -r 'a file.txt' '/dest'`, got)
}

func TestRenderCommand_PlaceholderSubstitution(t *testing.T) {
	got := renderCommand("tar czf backup.tgz {}", []string{"notes.md"})
	assert.Equal(t, `tar czf backup.tgz 'notes.md'`, got)
}

func TestRenderCommand_EscapesSingleQuotes(t *testing.T) {
	got := renderCommand("rm", []string{"it's here"})
	assert.Equal(t, `rm 'it'\''s here'`, got)
}

func TestRenderCommand_NoArgs(t *testing.T) {
	assert.Equal(t, "fin_deinit", renderCommand("fin_deinit", nil))
}

func TestEventRoundtrip(t *testing.T) {
	in := Event{Kind: KindTask, Command: "make -j8", Rendered: "make -j8"}
	buf, err := json.Marshal(in)
	require.NoError(t, err)

	var out Event
	require.NoError(t, json.Unmarshal(buf, &out))
	assert.Equal(t, in, out)
}
