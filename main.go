package main

import "github.com/qrave1/BerrowBooks/cmd"

func main() {
	cmd.Execute()
}
