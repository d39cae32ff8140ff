package main

import "github.com/arowla/django-versions/cmd/versions/cmd"

func main() {
	cmd.Execute()
}
