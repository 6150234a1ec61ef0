package main

// runCheck implements the check subcommand.
// It compiles .jsx files and verifies placeholders without writing output.
func runCheck(args []string) error {
	cfg, err := parseGenerateArgs(args)
	if err != nil {
		return err
	}
	cfg.verify = true
	return generate(cfg, false)
}
