/*
Package splitter implements Splitter contract: a weighted payment splitter
with a time-locked configuration.

The contract custodies inbound GAS and NEP-17 token transfers and splits the
held balance of a chosen asset between a fixed list of recipients
proportionally to their weights. The recipient list and weights form a single
configuration value together with its cached total weight and an expiration
timestamp; the configuration can only be replaced wholesale by the contract
owner, and only after the expiration time has come. Distribution itself is
open to any caller.

Shares are computed with integer floor division (weight * balance / total
weight), multiplying before dividing so no precision is lost ahead of the
division. The division leftover stays on the contract account; it is always
smaller than the total weight and is picked up by the next distribution.

Distribution transfers funds to external parties mid-execution, so the
state-mutating methods share an execution lock. A recipient that tries to
re-enter the contract from its payment callback faults the whole transaction
and no funds move.

# Contract notifications

Distribute notification. Amount is the contract balance read before the
split, which may exceed the sum of transferred shares by the floor-division
leftover.

	Distribute:
	  - name: asset
	    type: Hash160
	  - name: amount
	    type: Integer

Reconfigure notification. Produced when the owner replaces the
configuration.

	Reconfigure:
	  - name: totalWeight
	    type: Integer
	  - name: expiration
	    type: Integer
*/
package splitter

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'contractOwner' -> interop.Hash160
   script hash of the contract owner
 - 'c' -> std.Serialize(Config)
   current payout configuration (Config is a structure defined in current package)
 - 'g' -> []byte{1}
   execution lock marker, present only within a guarded invocation

# Configuration
The configuration is one serialized value replaced atomically, never mutated
field by field.
*/
