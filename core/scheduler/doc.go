// Package scheduler assigns launchers to fire requests.
//
// Every (request, launcher) pair whose fire time fits the launcher's
// lifetime becomes a boolean variable. Pairs on one launcher closer than
// the cooldown exclude each other. Requests are then added one by one in
// chronological order as "at least one of my variables" clauses, and the
// first request that cannot be added ends the schedulable prefix.
package scheduler
