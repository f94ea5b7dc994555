package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("development builds cannot self-update")
	ErrAlreadyLatest = errors.New("already on the latest version")
	ErrChecksum      = errors.New("checksum mismatch")
)

const binaryName = "mindora"

type UpdateInput struct {
	CurrentVersion string
	// TargetVersion pins a release tag. Empty means latest.
	TargetVersion string
}

// Stage names a step reported through the progress callback.
type Stage string

const (
	StageCheck    Stage = "check"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageApply    Stage = "apply"
	StageDone     Stage = "done"
)

type Progress struct {
	Stage   Stage
	Message string
}

// Update downloads the release archive for this platform, checks it
// against the release's checksums.txt and swaps the running binary.
func (c *Checker) Update(ctx context.Context, in *UpdateInput, report func(Progress)) error {
	if report == nil {
		report = func(Progress) {}
	}
	if in.CurrentVersion == "" || in.CurrentVersion == "dev" || in.CurrentVersion == "(devel)" {
		return ErrDevBuild
	}

	tag := in.TargetVersion
	if tag == "" {
		report(Progress{StageCheck, "Looking for a newer release"})
		res, err := c.Check(ctx, &CheckInput{Version: in.CurrentVersion})
		if err != nil {
			return err
		}
		if !res.UpdateAvailable {
			return ErrAlreadyLatest
		}
		tag = res.LatestVersion
	}

	asset, err := archiveName(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}

	report(Progress{StageDownload, "Downloading " + asset + " " + tag})
	archive, err := c.fetch(ctx, c.releaseURL(tag, asset))
	if err != nil {
		return fmt.Errorf("download %s: %w", asset, err)
	}
	sums, err := c.fetch(ctx, c.releaseURL(tag, "checksums.txt"))
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}

	report(Progress{StageVerify, "Verifying checksum"})
	want, ok := parseChecksums(sums)[asset]
	if !ok {
		return fmt.Errorf("%w: %s not listed in checksums.txt", ErrChecksum, asset)
	}
	if err := verify(archive, want); err != nil {
		return err
	}
	bin, err := unpack(archive, asset)
	if err != nil {
		return err
	}

	report(Progress{StageApply, "Replacing binary"})
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	if err := replaceFile(target, bin); err != nil {
		return err
	}

	report(Progress{StageDone, "Updated to " + tag})
	return nil
}

func (c *Checker) releaseURL(tag, file string) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s", c.downloadBaseURL, c.owner, c.repo, tag, file)
}

func (c *Checker) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

var releaseArch = map[string]string{"amd64": "x86_64", "arm64": "arm64", "386": "i386"}

// archiveName follows the goreleaser naming of the release artifacts.
func archiveName(goos, goarch string) (string, error) {
	if goos == "darwin" {
		return binaryName + "_Darwin_all.tar.gz", nil
	}
	arch, ok := releaseArch[goarch]
	if !ok {
		return "", fmt.Errorf("no release build for %s/%s", goos, goarch)
	}
	switch goos {
	case "linux":
		return fmt.Sprintf("%s_Linux_%s.tar.gz", binaryName, arch), nil
	case "windows":
		return fmt.Sprintf("%s_Windows_%s.zip", binaryName, arch), nil
	}
	return "", fmt.Errorf("no release build for %s/%s", goos, goarch)
}

// parseChecksums reads "<sha256>  <file>" lines.
func parseChecksums(data []byte) map[string]string {
	out := make(map[string]string)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if f := strings.Fields(sc.Text()); len(f) == 2 {
			out[f[1]] = f[0]
		}
	}
	return out
}

func verify(data []byte, wantHex string) error {
	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); !strings.EqualFold(got, wantHex) {
		return fmt.Errorf("%w: want %s, got %s", ErrChecksum, wantHex, got)
	}
	return nil
}

// unpack pulls the mindora binary out of a .tar.gz or .zip archive.
func unpack(archive []byte, asset string) ([]byte, error) {
	if strings.HasSuffix(asset, ".zip") {
		zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
		if err != nil {
			return nil, fmt.Errorf("open zip: %w", err)
		}
		for _, f := range zr.File {
			if path.Base(f.Name) != binaryName+".exe" {
				continue
			}
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer func() { _ = rc.Close() }()
			return io.ReadAll(rc)
		}
		return nil, fmt.Errorf("%s.exe not in archive", binaryName)
	}

	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s not in archive", binaryName)
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && path.Base(hdr.Name) == binaryName {
			return io.ReadAll(tr)
		}
	}
}

// replaceFile writes data beside target and renames it into place,
// keeping target's permissions.
func replaceFile(target string, data []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat %s: %w", target, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+binaryName+"-update-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("replace %s: %w", target, err)
	}
	return nil
}
