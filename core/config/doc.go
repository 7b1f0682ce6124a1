// Package config provides configuration management for seedfix.
//
// It utilizes Viper for loading configuration from environment variables, an
// optional seedfix.yaml and a .env file. Defaults live next to each section in
// `default:"..."` struct tags and are registered by reflection.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Log: Logging level and format
//   - Storage: S3/MinIO credentials and bucket settings
//   - Gateway: Document backend (file or s3), root directory and backups
//   - Database: Connection details for the live seed check
//   - Seed: Block markers, placeholders, replacement table and canonical blocks
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Seed.Document)
package config
