// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin key generation and validation.

Admin keys are deterministic HMAC-SHA256 values over the election id,
salted with ADMIN_KEY_SALT, so they can be re-derived for
verification without storing them:

	key := auth.GenerateAdminKey(electionID, salt)
	err := auth.ValidateAdminKey(electionID, key, salt)

Validation uses constant-time comparison. Voter authentication is out
of scope here: the upstream eligibility service validates voters and
forwards their identity in X-Voter-ID.
*/
package auth
