// Command preflight checks a Python environment against its declared
// requirements, installs what is missing, and launches applications in
// the verified environment.
package main

func main() {
	Execute()
}
