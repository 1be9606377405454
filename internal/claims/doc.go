// Package claims defines the typed claim shapes embedded in signed
// bearer tokens, one shape per principal kind.
//
// # Principal Kinds
//
// Four kinds of principals exist on the platform:
//
//   - reader: an end user consuming content (entity type "user")
//   - writer: an end user publishing content (entity type "user")
//   - publisher: a publisher house organization (entity type "publisher")
//   - admin: a system administrator (entity type "admin")
//
// Readers and writers are sub-roles of the same user entity; publishers
// and admins are distinct entity types with their own records.
//
// # Claim Shapes
//
// Each kind has exactly one claim shape and each shape carries exactly
// the fields of its kind. There are no optional cross-kind fields; code
// consuming a verified token switches on the concrete type rather than
// probing for fields:
//
//	switch cs := cs.(type) {
//	case claims.UserClaims:
//		// cs.UserID, cs.Role
//	case claims.PublisherClaims:
//		// cs.PublisherHouseID, cs.Name, cs.Email
//	case claims.AdminClaims:
//		// cs.AdminID, cs.Username, cs.Role, cs.Permissions
//	}
//
// # Admin Permissions
//
// Admin capability flags are derived deterministically from the admin
// role via PermissionsFor. The mapping is static: super_admin holds
// every capability, each other role holds exactly the one capability
// matching its name. Constructors always derive; caller-supplied
// permission flags are never honored.
package claims
