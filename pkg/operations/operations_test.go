package operations_test

import (
	"path/filepath"
	"testing"

	"github.com/dotflex/dotflex/pkg/errors"
	"github.com/dotflex/dotflex/pkg/operations"
	"github.com/dotflex/dotflex/pkg/paths"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type manifest struct {
	Install operations.List `yaml:"install"`
}

func allKinds() operations.List {
	return operations.List{
		operations.CopyFile{From: "@r/features/zsh/.zshrc", To: "@t/.zshrc"},
		operations.AppendToFile{From: "@r/features/zsh/aliases", To: "@t/.zsh_aliases"},
		operations.ShellString{
			Cmd: "mkdir -p ~/.cache/zsh",
			Effects: &operations.Effects{
				Generates: []string{"@t/.cache/zsh"},
			},
		},
		operations.ShellFile{
			Cmd: operations.NewInvocation("@r/features/zsh/setup.sh", "--quiet", "--force"),
			Effects: &operations.Effects{
				Clobbers: []string{"@t/.zcompdump"},
				Deletes:  []string{"@t/.zsh_old"},
			},
		},
	}
}

func newRoots(t *testing.T) *paths.Roots {
	t.Helper()
	base := t.TempDir()
	roots, err := paths.New(paths.Options{
		ConfigRoot: filepath.Join(base, "config"),
		TargetRoot: filepath.Join(base, "home"),
	})
	require.NoError(t, err)
	return roots
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "copy_file", operations.KindCopyFile.String())
	assert.Equal(t, "append_file", operations.KindAppendToFile.String())
	assert.Equal(t, "shell", operations.KindShellString.String())
	assert.Equal(t, "script", operations.KindShellFile.String())
	assert.Equal(t, "unknown", operations.Kind(99).String())
}

func TestInvocation(t *testing.T) {
	args := []string{"-a", "-b"}
	inv := operations.NewInvocation("/bin/tool", args...)

	args[0] = "changed"
	assert.Equal(t, []string{"-a", "-b"}, inv.Args(), "constructor must copy args")

	got := inv.Args()
	got[1] = "changed"
	assert.Equal(t, []string{"-a", "-b"}, inv.Args(), "accessor must return a copy")

	assert.Equal(t, "/bin/tool -a -b", inv.String())
	assert.Equal(t, "/bin/tool", operations.NewInvocation("/bin/tool").String())

	moved := inv.WithFile("/usr/bin/tool")
	assert.Equal(t, "/usr/bin/tool", moved.File())
	assert.Equal(t, "/bin/tool", inv.File())
	assert.Equal(t, inv.Args(), moved.Args())
}

func TestViable(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/repo/file", []byte("x"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/repo/setup.sh", []byte("#!/bin/sh"), 0755))
	require.NoError(t, fs.MkdirAll("/repo/dir", 0755))

	tests := []struct {
		name string
		op   operations.Operation
		want bool
	}{
		{"copy existing file", operations.CopyFile{From: "/repo/file", To: "/home/file"}, true},
		{"copy existing dir", operations.CopyFile{From: "/repo/dir", To: "/home/dir"}, true},
		{"copy missing source", operations.CopyFile{From: "/repo/missing", To: "/home/file"}, false},
		{"append existing", operations.AppendToFile{From: "/repo/file", To: "/home/missing"}, true},
		{"append missing source", operations.AppendToFile{From: "/repo/missing", To: "/home/file"}, false},
		{"shell always", operations.ShellString{Cmd: "exit 1"}, true},
		{"script present", operations.ShellFile{Cmd: operations.NewInvocation("/repo/setup.sh")}, true},
		{"script missing", operations.ShellFile{Cmd: operations.NewInvocation("/repo/nope.sh")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, operations.Viable(fs, tt.op))
			// no side effects: still the same answer
			assert.Equal(t, tt.want, operations.Viable(fs, tt.op))
		})
	}

	exists, err := afero.Exists(fs, "/home")
	require.NoError(t, err)
	assert.False(t, exists, "viability checks must not create anything")
}

func TestListRoundTrip(t *testing.T) {
	in := manifest{Install: allKinds()}

	data, err := yaml.Marshal(in)
	require.NoError(t, err)

	var out manifest
	require.NoError(t, yaml.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestListDecode(t *testing.T) {
	doc := `
install:
  - copy_file:
      from: "@r/features/vim/.vimrc"
      to: "@t/.vimrc"
  - append_file:
      from: "@r/features/vim/extra"
      to: "@t/.vimrc"
  - shell:
      cmd: vim +PlugInstall +qall
  - script:
      cmd:
        file: "@r/features/vim/install.sh"
        args: [one, two]
      effects:
        generates: ["@t/.vim/plugged"]
        clobbers: []
        deletes: []
`
	var m manifest
	require.NoError(t, yaml.Unmarshal([]byte(doc), &m))
	require.Len(t, m.Install, 4)

	assert.Equal(t, operations.CopyFile{From: "@r/features/vim/.vimrc", To: "@t/.vimrc"}, m.Install[0])
	assert.Equal(t, operations.AppendToFile{From: "@r/features/vim/extra", To: "@t/.vimrc"}, m.Install[1])
	assert.Equal(t, operations.ShellString{Cmd: "vim +PlugInstall +qall"}, m.Install[2])
	assert.Equal(t, operations.ShellFile{
		Cmd:     operations.NewInvocation("@r/features/vim/install.sh", "one", "two"),
		Effects: &operations.Effects{Generates: []string{"@t/.vim/plugged"}},
	}, m.Install[3])
}

func TestListEncodeShape(t *testing.T) {
	data, err := yaml.Marshal(manifest{Install: operations.List{
		operations.CopyFile{From: "@r/a", To: "@t/a"},
		operations.ShellString{Cmd: "true"},
	}})
	require.NoError(t, err)

	var generic struct {
		Install []map[string]map[string]interface{} `yaml:"install"`
	}
	require.NoError(t, yaml.Unmarshal(data, &generic))
	require.Len(t, generic.Install, 2)
	assert.Equal(t, map[string]interface{}{"from": "@r/a", "to": "@t/a"}, generic.Install[0]["copy_file"])
	assert.Equal(t, map[string]interface{}{"cmd": "true"}, generic.Install[1]["shell"])
	assert.NotContains(t, string(data), "effects", "absent effects are omitted")
}

func TestListDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown tag", "install:\n  - symlink: {from: a, to: b}\n"},
		{"two keys", "install:\n  - shell: {cmd: a}\n    copy_file: {from: a, to: b}\n"},
		{"scalar entry", "install:\n  - just a string\n"},
		{"not a list", "install: {shell: {cmd: a}}\n"},
		{"copy without to", "install:\n  - copy_file: {from: a}\n"},
		{"shell without cmd", "install:\n  - shell: {}\n"},
		{"script without file", "install:\n  - script: {cmd: {args: [x]}}\n"},
		{"body not a mapping", "install:\n  - shell: echo hi\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m manifest
			err := yaml.Unmarshal([]byte(tt.doc), &m)
			require.Error(t, err)
			assert.Contains(t, err.Error(), string(errors.ErrManifestParse))
		})
	}
}

func TestResolveForInstall(t *testing.T) {
	roots := newRoots(t)

	resolved := operations.ResolveForInstall(roots, operations.CopyFile{From: "features/zsh/.zshrc", To: ".zshrc"})
	assert.Equal(t, operations.CopyFile{
		From: roots.RepoPath("features", "zsh", ".zshrc"),
		To:   roots.TargetPath(".zshrc"),
	}, resolved)

	resolved = operations.ResolveForInstall(roots, operations.AppendToFile{From: "@l/snippet", To: "/etc/motd"})
	assert.Equal(t, operations.AppendToFile{From: roots.LocalPath("snippet"), To: "/etc/motd"}, resolved)

	shell := operations.ShellString{Cmd: "echo @r"}
	assert.Equal(t, shell, operations.ResolveForInstall(roots, shell))

	resolved = operations.ResolveForInstall(roots, operations.ShellFile{Cmd: operations.NewInvocation("bin/setup", "-q")})
	assert.Equal(t, operations.ShellFile{Cmd: operations.NewInvocation(roots.RepoPath("bin", "setup"), "-q")}, resolved)
}

func TestVirtualizeInvertsResolve(t *testing.T) {
	roots := newRoots(t)

	for _, op := range allKinds() {
		concrete := operations.ResolveForInstall(roots, op)
		assert.Equal(t, op, operations.Virtualize(roots, concrete), "kind %s", op.Kind())
	}
}

func TestDescribe(t *testing.T) {
	roots := newRoots(t)

	tests := []struct {
		name string
		op   operations.Operation
		want string
	}{
		{
			"copy uses virtual paths",
			operations.CopyFile{From: roots.RepoPath("features", "git", ".gitconfig"), To: roots.TargetPath(".gitconfig")},
			"copying @r/features/git/.gitconfig to @t/.gitconfig",
		},
		{
			"append keeps foreign paths",
			operations.AppendToFile{From: roots.RepoPath("motd"), To: "/etc/motd"},
			"appending @r/motd to /etc/motd",
		},
		{
			"shell",
			operations.ShellString{Cmd: "rm -rf /tmp/x"},
			"executing shell command",
		},
		{
			"script",
			operations.ShellFile{Cmd: operations.NewInvocation(roots.RepoPath("setup.sh"), "a", "b")},
			"executing file: @r/setup.sh a b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, operations.Describe(roots, tt.op))
		})
	}

	assert.Equal(t, "copying a to b", operations.Describe(nil, operations.CopyFile{From: "a", To: "b"}))
}

func TestMarkdown(t *testing.T) {
	out := operations.Markdown(nil, "zsh", allKinds())

	assert.Contains(t, out, "# zsh")
	assert.Contains(t, out, "1. **copy** `@r/features/zsh/.zshrc` → `@t/.zshrc`")
	assert.Contains(t, out, "2. **append**")
	assert.Contains(t, out, "3. **shell** `mkdir -p ~/.cache/zsh`")
	assert.Contains(t, out, "    - generates `@t/.cache/zsh`")
	assert.Contains(t, out, "4. **script** `@r/features/zsh/setup.sh --quiet --force`")
	assert.Contains(t, out, "    - clobbers `@t/.zcompdump`")
	assert.Contains(t, out, "    - deletes `@t/.zsh_old`")

	empty := operations.Markdown(nil, "none", nil)
	assert.Contains(t, empty, "No install operations")
}

type kindCounter struct {
	seen map[operations.Kind]int
}

func (k *kindCounter) VisitCopyFile(op operations.CopyFile) error {
	k.seen[op.Kind()]++
	return nil
}

func (k *kindCounter) VisitAppendToFile(op operations.AppendToFile) error {
	k.seen[op.Kind()]++
	return nil
}

func (k *kindCounter) VisitShellString(op operations.ShellString) error {
	k.seen[op.Kind()]++
	return nil
}

func (k *kindCounter) VisitShellFile(op operations.ShellFile) error {
	k.seen[op.Kind()]++
	return nil
}

func TestAcceptDispatchesEveryKind(t *testing.T) {
	counter := &kindCounter{seen: map[operations.Kind]int{}}
	for _, op := range allKinds() {
		require.NoError(t, op.Accept(counter))
	}
	assert.Equal(t, map[operations.Kind]int{
		operations.KindCopyFile:     1,
		operations.KindAppendToFile: 1,
		operations.KindShellString:  1,
		operations.KindShellFile:    1,
	}, counter.seen)
}
