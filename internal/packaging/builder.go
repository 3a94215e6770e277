package packaging

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"mediabridge/internal/config"
	"mediabridge/internal/logging"
	"mediabridge/internal/plugin"
)

const (
	manifestFile     = "manifest.json"
	requirementsFile = "requirements.txt"
	readmeFile       = "README.md"
	playlistsDir     = "playlists"
	depsDir          = "deps"
)

// Result describes a completed build.
type Result struct {
	ArchivePath string
	Entries     []string
	Vendored    bool
}

// installRunner executes the dependency installer. Tests substitute one that
// fabricates a vendored tree.
type installRunner func(ctx context.Context, name string, args ...string) error

func execInstaller(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run()
}

// Builder assembles a distributable plugin archive from a source directory.
// The archive unpacks into plugins/<Name>/ of the host assistant, so every
// entry is stored relative to the archive root.
type Builder struct {
	logger    *slog.Logger
	sourceDir string
	outputDir string
	installer string
	install   installRunner
}

// NewBuilder constructs a builder from the packaging configuration.
func NewBuilder(logger *slog.Logger, cfg *config.Config) *Builder {
	return &Builder{
		logger:    logging.NewComponentLogger(logger, "packaging"),
		sourceDir: cfg.Packaging.SourceDir,
		outputDir: cfg.Packaging.OutputDir,
		installer: cfg.Packaging.Installer,
		install:   execInstaller,
	}
}

// Build produces the plugin archive. The output directory is removed and
// recreated so repeated builds always reflect the current file set. When the
// source declares no requirements file the vendoring step is skipped and the
// archive ships without a deps directory.
func (b *Builder) Build(ctx context.Context) (Result, error) {
	manifest, err := plugin.Load(filepath.Join(b.sourceDir, manifestFile))
	if err != nil {
		return Result{}, err
	}
	entryPath := filepath.Join(b.sourceDir, manifest.EntryPoint)
	if _, err := os.Stat(entryPath); err != nil {
		return Result{}, fmt.Errorf("entry script %s: %w", manifest.EntryPoint, err)
	}

	if err := os.RemoveAll(b.outputDir); err != nil {
		return Result{}, fmt.Errorf("clear output directory: %w", err)
	}
	if err := os.MkdirAll(b.outputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output directory: %w", err)
	}

	vendored, err := b.vendorDependencies(ctx)
	if err != nil {
		return Result{}, err
	}

	archiveName := manifest.Name + ".zip"
	if strings.TrimSpace(manifest.Version) != "" {
		archiveName = fmt.Sprintf("%s-%s.zip", manifest.Name, manifest.Version)
	}
	archivePath := filepath.Join(b.outputDir, archiveName)

	entries, err := b.writeArchive(archivePath, manifest, vendored)
	if err != nil {
		return Result{}, err
	}

	b.logger.Info("plugin archive built",
		logging.String("archive", archivePath),
		logging.Int("entries", len(entries)),
		logging.Bool("vendored", vendored))

	return Result{ArchivePath: archivePath, Entries: entries, Vendored: vendored}, nil
}

// vendorDependencies installs the declared requirements into a local deps
// directory under the output directory. A missing requirements file skips the
// step entirely.
func (b *Builder) vendorDependencies(ctx context.Context) (bool, error) {
	reqPath := filepath.Join(b.sourceDir, requirementsFile)
	if _, err := os.Stat(reqPath); err != nil {
		if os.IsNotExist(err) {
			b.logger.Debug("no requirements file, skipping vendoring")
			return false, nil
		}
		return false, fmt.Errorf("stat requirements file: %w", err)
	}

	target := filepath.Join(b.outputDir, depsDir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return false, fmt.Errorf("create deps directory: %w", err)
	}
	args := []string{"install", "-r", reqPath, "--target", target}
	if err := b.install(ctx, b.installer, args...); err != nil {
		return false, fmt.Errorf("%s install: %w", b.installer, err)
	}
	return true, nil
}

// writeArchive zips exactly the declared artifact set: the entry script, the
// requirements file if present, the README if present, the manifest, the
// playlists directory, and the vendored deps directory when produced.
func (b *Builder) writeArchive(archivePath string, manifest plugin.Manifest, vendored bool) ([]string, error) {
	out, err := os.Create(archivePath)
	if err != nil {
		return nil, fmt.Errorf("create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	var entries []string

	addFile := func(src string, name string) error {
		data, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		w, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("add %s: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		entries = append(entries, name)
		return nil
	}

	addTree := func(root string, prefix string) error {
		return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			return addFile(path, prefix+"/"+filepath.ToSlash(rel))
		})
	}

	if err := addFile(filepath.Join(b.sourceDir, manifest.EntryPoint), manifest.EntryPoint); err != nil {
		return nil, err
	}
	if err := addFile(filepath.Join(b.sourceDir, manifestFile), manifestFile); err != nil {
		return nil, err
	}
	for _, optional := range []string{requirementsFile, readmeFile} {
		src := filepath.Join(b.sourceDir, optional)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := addFile(src, optional); err != nil {
			return nil, err
		}
	}

	playlists := filepath.Join(b.sourceDir, playlistsDir)
	if info, err := os.Stat(playlists); err == nil && info.IsDir() {
		if err := addTree(playlists, playlistsDir); err != nil {
			return nil, err
		}
	}
	if vendored {
		if err := addTree(filepath.Join(b.outputDir, depsDir), depsDir); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	sort.Strings(entries)
	return entries, nil
}
