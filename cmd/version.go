package cmd

// Version is set at build time via ldflags, for example:
//
//	go build -ldflags "-X github.com/autoapply/fillengine/cmd.Version=1.2.0"
var Version = "0.1.0"
