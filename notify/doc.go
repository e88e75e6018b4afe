// Package notify delivers one-time reset codes over email and SMS channel
// abstractions. Channels fail independently and never panic; whether a partial
// delivery counts as success is an explicit, named policy ([DeliveryPolicy])
// rather than an implicit behavior. The default policy treats email success as
// sufficient, with SMS best-effort.
package notify
