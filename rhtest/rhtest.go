// Package rhtest configures and runs row-hammer attack campaigns.
//
// A campaign is an ordered attack table, a set of timer channels, a data
// pattern and the refresh/precharge settings of the test block. The table
// lives here; everything else is a register of the test block and is read
// back from hardware whenever it is shown.
package rhtest

// Capacity is the number of entries the attack table can hold.
const Capacity = 20

// NumCampaignStates is the number of hammering states of the test block.
const NumCampaignStates = 10

// NumTimers is the highest logical timer id. Timer 0 is the aggregate cycle
// counter; timers 1 to NumTimers each count cycles for a pair of states.
const NumTimers = NumCampaignStates / 2

// AggregateChannel is the physical channel of the aggregate cycle counter.
const AggregateChannel uint32 = 1
