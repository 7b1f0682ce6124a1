// Package gateway loads and stores seed documents.
//
// The Gateway interface hides where the document lives. Two backends exist:
//
//   - FileGateway: a local file below a root directory. Saves go to a temporary
//     file in the same directory which is synced and renamed over the target, so
//     a crash never leaves a half-written seed.
//   - ObjectGateway: an object in an S3/MinIO bucket, accessed through
//     core/storage. Uploads carry the application/sql content type.
//
// Both keep the previous content as "<name>.bak" when backups are enabled.
// All errors are wrapped with the document path; ErrNotFound and ErrPathInvalid
// can be matched with errors.Is.
//
// # Usage
//
//	gw, err := gateway.New(cfg.Gateway, cfg.Storage, client)
//	doc, err := gw.Load(ctx, "database-init.sql")
//	err = gw.Save(ctx, "database-init.sql", fixed)
package gateway
