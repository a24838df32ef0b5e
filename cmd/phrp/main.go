// cmd/phrp/main.go
package main

import (
	"phrp/internal/app"
	"phrp/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
