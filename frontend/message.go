// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frontend

import (
	"fmt"
	"io"
)

const (
	PackageName    = "vtline"
	CommandName    = "vtline"
	CommandRefName = "vtline-ref"

	VersionInfo = `Copyright (c) 2022~2024 wangqi ericwq057@qq.com
This is free software: you are free to change and redistribute it.
There is NO WARRANTY, to the extent permitted by law.

terminal test harness for line editors
`
)

var (
	BuildVersion string // build version
	GoVersion    string // Go version
	BuildTime    string // build time
	GitCommit    string // git commit id
	GitBranch    string // git branch name
)

func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "version   \t: %s\n", BuildVersion)
	fmt.Fprintf(w, "go version\t: %s\n", GoVersion)
	fmt.Fprintf(w, "build time\t: %s\n", BuildTime)
	fmt.Fprintf(w, "git commit\t: %s\n", GitCommit)
	fmt.Fprintf(w, "git branch\t: %s\n\n", GitBranch)
	fmt.Fprint(w, VersionInfo)
}
