// Package robot implements the command core of Quadbot: a closed action
// vocabulary, a dispatcher that fans commands out to ESP32 quadrupeds over
// MQTT, and a metadata registry for enrolled robots.
//
// # Dispatch Model
//
// A dispatch names one action and one or more numeric targets. Every target
// gets its own publish to esp32/robot<N>/sub carrying the raw action string;
// targets are processed in order and independently, so one robot's failed
// publish never blocks the rest (partial-failure semantics). Three
// conditions short-circuit the whole batch before any publish: malformed
// targets, an out-of-vocabulary action, and an unavailable broker
// connection.
//
// # Registry vs Dispatch
//
// The registry stores operator-facing metadata (names, notes) for enrolled
// robots. It is deliberately decoupled from dispatch: any positive
// identifier can be commanded, enrolled or not, because the fleet contract
// is the topic convention rather than this database.
package robot
