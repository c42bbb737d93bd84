package main

import excheck "github.com/ShadowStrikeHQ/codeintel-improper-exception-handling-checker/cmd/excheck"

func main() { excheck.Execute() }
