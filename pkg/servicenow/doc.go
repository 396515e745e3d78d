// Package servicenow provisions workshop attendee accounts in a
// ServiceNow instance through the table API.
package servicenow
