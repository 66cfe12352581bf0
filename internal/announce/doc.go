// Package announce publishes detection events to an MQTT broker.
//
// The announcer is optional: it only exists when the process config carries
// an mqtt section, and a broker outage is never more than a logged warning.
package announce
