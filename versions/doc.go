// Package versions indexes a source tree by operation and version.
//
// Operation files may be overridden per version:
//
//	widgets/get.yml            draft
//	widgets/get/20210101.yml   version 20210101
//
// The version set is every token found on an operation file, sorted
// lexicographically, with "draft" appended last. Lexicographic order is
// correct for YYYYMMDD and YYYY-MM-DD tokens only.
//
// Lookups never guess: [Index.TemplateFor] returns the exact version when the
// operation defines it and the draft otherwise, and fails with
// *oaserrors.OperationNotFoundError when neither exists.
//
// # Ranges
//
// [Index.Range] is "strictly after, up to and including":
//
//	// versions: 20210101 20210201 20210301 draft
//	idx.Range("20210101", "20210301") // [20210201 20210301]
//	idx.Range("", "20210201")         // [20210101 20210201]
//
// [Index.FindRange] applies test metadata on top and returns the newest
// version first. In draft-only mode (the default) it always returns
// ["draft"].
//
// # Caching
//
// An Index scans its root once, on first use, and compiles each static or
// per-version document at most once. Concurrent first calls share a single
// computation. [Index.Reset] drops everything so the next call rescans.
package versions
