// Package domain contains the entities of the fit service, such as users and
// fit runs. They carry no infrastructure concerns so that storage, the job
// queue and the HTTP API can share them.
package domain
