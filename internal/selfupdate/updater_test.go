package selfupdate

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveName(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         string
		wantErr      bool
	}{
		{"darwin", "arm64", "mindora_Darwin_all.tar.gz", false},
		{"linux", "amd64", "mindora_Linux_x86_64.tar.gz", false},
		{"linux", "386", "mindora_Linux_i386.tar.gz", false},
		{"windows", "arm64", "mindora_Windows_arm64.zip", false},
		{"freebsd", "amd64", "", true},
		{"linux", "riscv64", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			got, err := archiveName(tt.goos, tt.goarch)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChecksums(t *testing.T) {
	got := parseChecksums([]byte("aa11  mindora_Linux_x86_64.tar.gz\n\nbroken\nbb22  mindora_Darwin_all.tar.gz\n"))
	assert.Equal(t, map[string]string{
		"mindora_Linux_x86_64.tar.gz": "aa11",
		"mindora_Darwin_all.tar.gz":   "bb22",
	}, got)
}

func TestVerify(t *testing.T) {
	data := []byte("payload")
	sum := sha256.Sum256(data)
	require.NoError(t, verify(data, hex.EncodeToString(sum[:])))
	assert.ErrorIs(t, verify(data, "deadbeef"), ErrChecksum)
}

func TestUnpackTarGz(t *testing.T) {
	archive := tarGz(t, "mindora_1.2.0/mindora", []byte("binary"))
	got, err := unpack(archive, "mindora_Linux_x86_64.tar.gz")
	require.NoError(t, err)
	assert.Equal(t, []byte("binary"), got)

	_, err = unpack(tarGz(t, "README.md", []byte("x")), "mindora_Linux_x86_64.tar.gz")
	assert.Error(t, err)
}

func TestReplaceFileKeepsMode(t *testing.T) {
	target := filepath.Join(t.TempDir(), "mindora")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o755))

	require.NoError(t, replaceFile(target, []byte("new")))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/mindora-app/mindora/releases/latest", r.URL.Path)
		fmt.Fprint(w, `{"tag_name":"v1.4.0"}`)
	}))
	defer srv.Close()
	c := NewChecker(DefaultOwner, DefaultRepo, WithBaseURLs(srv.URL, srv.URL))

	tests := []struct {
		current string
		want    bool
	}{
		{"v1.3.9", true},
		{"1.3.9", true},
		{"v1.4.0", false},
		{"v2.0.0", false},
		{"dev", false},
	}
	for _, tt := range tests {
		res, err := c.Check(context.Background(), &CheckInput{Version: tt.current})
		require.NoError(t, err)
		assert.Equal(t, "v1.4.0", res.LatestVersion)
		assert.Equal(t, tt.want, res.UpdateAvailable, tt.current)
	}
}

func TestUpdate(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("archive fixture is tar.gz")
	}
	asset, err := archiveName(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		t.Skip(err)
	}
	archive := tarGz(t, "mindora", []byte("fresh build"))
	sum := sha256.Sum256(archive)

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/mindora-app/mindora/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tag_name":"v0.2.0"}`)
	})
	mux.HandleFunc("/mindora-app/mindora/releases/download/v0.2.0/"+asset, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(archive)
	})
	mux.HandleFunc("/mindora-app/mindora/releases/download/v0.2.0/checksums.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "%s  %s\n", hex.EncodeToString(sum[:]), asset)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	target := filepath.Join(t.TempDir(), "mindora")
	require.NoError(t, os.WriteFile(target, []byte("stale"), 0o755))
	c := NewChecker(DefaultOwner, DefaultRepo,
		WithBaseURLs(srv.URL, srv.URL),
		WithExecPath(func() (string, error) { return target, nil }),
	)

	var stages []Stage
	err = c.Update(context.Background(), &UpdateInput{CurrentVersion: "v0.1.0"}, func(p Progress) {
		stages = append(stages, p.Stage)
	})
	require.NoError(t, err)
	assert.Equal(t, []Stage{StageCheck, StageDownload, StageVerify, StageApply, StageDone}, stages)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "fresh build", string(data))

	err = c.Update(context.Background(), &UpdateInput{CurrentVersion: "v0.2.0"}, nil)
	assert.ErrorIs(t, err, ErrAlreadyLatest)
	assert.ErrorIs(t, c.Update(context.Background(), &UpdateInput{CurrentVersion: "dev"}, nil), ErrDevBuild)
}

func tarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Mode: 0o755, Size: int64(len(content)), Typeflag: tar.TypeReg}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}
