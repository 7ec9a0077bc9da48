package runner

import (
	"io"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func requireCommand(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
}

func TestRun_WritesStdinAndReadsStdout(t *testing.T) {
	requireCommand(t, "cat")

	out, err := Run(t.Context(), "cat", nil, []byte("var a = 1;"))
	require.NoError(t, err)
	require.Equal(t, "var a = 1;", out)
}

func TestRun_ExitError(t *testing.T) {
	requireCommand(t, "sh")

	_, err := Run(t.Context(), "sh", []string{"-c", "echo broken >&2; exit 3"}, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrCommandFailed)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 3, exitErr.Code)
	require.Equal(t, "broken", exitErr.Stderr)
	require.Equal(t, "sh exited with code 3: broken", exitErr.Error())
}

func TestRun_MaxBuffer(t *testing.T) {
	requireCommand(t, "cat")

	_, err := Run(t.Context(), "cat", nil, []byte(strings.Repeat("a", 64)), WithMaxBuffer(16))
	require.ErrorIs(t, err, ErrMaxBuffer)
}

func TestRun_MaxBufferAllowsExactLimit(t *testing.T) {
	requireCommand(t, "cat")

	out, err := Run(t.Context(), "cat", nil, []byte(strings.Repeat("a", 16)), WithMaxBuffer(16))
	require.NoError(t, err)
	require.Len(t, out, 16)
}

func TestLimitedBuffer_CopyHonoursLimit(t *testing.T) {
	b := &limitedBuffer{limit: 16}

	_, isReaderFrom := any(b).(io.ReaderFrom)
	require.False(t, isReaderFrom)

	_, err := io.Copy(b, strings.NewReader(strings.Repeat("a", 64)))
	require.ErrorIs(t, err, ErrMaxBuffer)
	require.True(t, b.exceeded)
	require.LessOrEqual(t, b.Len(), 16)
}

func TestRun_Timeout(t *testing.T) {
	requireCommand(t, "sleep")

	start := time.Now()
	_, err := Run(t.Context(), "sleep", []string{"5"}, nil, WithTimeout(100*time.Millisecond))
	require.ErrorIs(t, err, ErrTimeout)
	require.Less(t, time.Since(start), 4*time.Second)
}

func TestRun_Env(t *testing.T) {
	requireCommand(t, "sh")

	out, err := Run(t.Context(), "sh", []string{"-c", "printf %s \"$MINIFY_TEST\""}, nil, WithEnv("MINIFY_TEST=yes"))
	require.NoError(t, err)
	require.Equal(t, "yes", out)
}

func TestRun_RejectsInvalidInput(t *testing.T) {
	_, err := Run(t.Context(), "", nil, nil)
	require.ErrorIs(t, err, ErrInvalidCommand)

	_, err = Run(t.Context(), "java; rm -rf /", nil, nil)
	require.ErrorIs(t, err, ErrInvalidCommand)

	_, err = Run(t.Context(), "java", []string{"-jar", "a.jar\nrm"}, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name    string
		command string
		wantErr bool
	}{
		{name: "plain name", command: "java", wantErr: false},
		{name: "absolute path", command: "/usr/lib/jvm/bin/java", wantErr: false},
		{name: "windows path", command: `C:\Java\bin\java.exe`, wantErr: false},
		{name: "empty", command: "", wantErr: true},
		{name: "leading dash", command: "-java", wantErr: true},
		{name: "shell pipe", command: "java|sh", wantErr: true},
		{name: "backtick", command: "`java`", wantErr: true},
		{name: "space", command: "java -jar", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCommand(tt.command)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidCommand)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateValue(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "empty", value: "", wantErr: false},
		{name: "level", value: "SIMPLE_OPTIMIZATIONS", wantErr: false},
		{name: "version", value: "ECMASCRIPT_2015", wantErr: false},
		{name: "flag injection", value: "--js_output_file=/etc/passwd", wantErr: true},
		{name: "newline", value: "SIMPLE\n--debug", wantErr: true},
		{name: "nul", value: "a\x00b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateValue("compilation_level", tt.value)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
		})
	}
}
