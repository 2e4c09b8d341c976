// Agekeep keeps generational copies of a file: one set of archives per time
// period (hourly, daily, weekly, monthly, yearly, forever), refreshed and
// pruned on every run.
//
// Usage:
//
//	# Archive a file for the first time
//	agekeep archive --new /var/backups/db.sql.gz
//
//	# Subsequent runs, typically from cron
//	agekeep archive /var/backups/db.sql.gz
//
//	# Run as a daemon with scheduled and watched targets
//	agekeep run --config agekeep.yaml
//
//	# Show what the tracker currently holds
//	agekeep status /var/backups/.archive-tracker
package main

func main() {
	Execute()
}
