package main

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "autocv"
)

var rootCmd = &cobra.Command{
	Use:   app,
	Short: "autocv scores resumes against a target role and suggests improvements",
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("taxonomy", "SKILLS_TAXONOMY_PATH"); err != nil {
		log.Fatalf("binding SKILLS_TAXONOMY_PATH environment variable: %v", err)
	}

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}
