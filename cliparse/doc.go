// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment
variables.

Flags take precedence, environment variables fill the gaps:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Settings:

  - -p / PORT: server port (default 3320)
  - -d / DATABASE_URL: required
  - -t / DATABASE_TYPE: sqlite (default) or postgres
  - -admin-salt / ADMIN_KEY_SALT: required secret
  - -commit-queue / COMMIT_QUEUE_SIZE: aggregator mailbox bound
  - -subscriber-queue / SUBSCRIBER_QUEUE_SIZE: per-connection
    outbound queue bound
*/
package cliparse
