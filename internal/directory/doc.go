// Package directory manages the organizational entities of campuscore:
// user accounts, schools, and the buildings that belong to them.
//
// This package provides:
//   - User accounts with role-based identity (inspector, technician, admin)
//   - Argon2id password hashing in PHC string format
//   - Schools with address and contact details
//   - Buildings, optionally assigned to a school, with type and size
//   - First-boot admin seeding on an empty users table
//
// Deletion Policy:
//
// Users and buildings are never hard-deleted. Inspection reports and
// maintenance history must stay resolvable indefinitely, so accounts and
// buildings are archived instead. Archived rows keep their ID and remain
// readable; they are only excluded from active listings.
//
// Usage:
//
//	repo := directory.NewSQLiteRepository(db)
//	user := &directory.User{Username: "mgarcia", Role: directory.RoleInspector}
//	user.PasswordHash, _ = directory.HashPassword("secret")
//	if err := repo.CreateUser(ctx, user); err != nil {
//	    if errors.Is(err, directory.ErrUserExists) {
//	        // username or email already taken
//	    }
//	}
package directory
