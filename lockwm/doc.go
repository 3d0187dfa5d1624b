/*
Lockwm is a tiling window manager for X11 whose key bindings can be switched
off with a single chord, so that every other key combination reaches the
focused program untouched.


INSTALLATION

To install lockwm:
	1. Install Go (as per https://go.dev/doc/install or get it from
	   your distribution).
	2. Run "go install github.com/lockwm/lockwm/lockwm@latest".

Lockwm is designed to run from an Xsession session. Add this line to the end of
your ~/.xsession file:
	/path/to/your/lockwm
where the path is wherever "go install" wrote to. Run "go help gopath" for
more information. Log messages go to standard error, which most display
managers collect in ~/.xsession-errors.


USAGE

Windows are tiled by the current layout: a main area on the left, on the
right or on top with the remaining windows stacked beside it, or a single
full screen window. The focused window has an aqua border, other windows a
dark one. The top 15 pixels of the screen are left free for a status bar.

All default key bindings hold down the Alt key. Alt and J or K moves the focus
down or up the window list, and Shift with them moves the focused window. Alt
and the bracket keys cycle through the layouts. Alt, Shift and the arrow keys
change the number and size of the main windows. Alt and Q closes the focused
window. Alt and Enter opens a terminal, Alt and semicolon opens dmenu, and Alt
and Escape quits lockwm.

Alt and G locks the keyboard: lockwm releases every key grab except Alt and G
itself, so programs such as games, virtual machines and remote desktops see
all other keys. Alt and G again unlocks it. The lock chord works in every
mode.


MODES

Lockwm is always in one of five modes: normal, locked, resize, move and focus.
Each mode has its own binding table. Normal uses the fallback bindings
overlaid by its own, locked uses only its own, and resize, move and focus use
the fallback bindings unless the configuration gives them a table. A binding
can enter a mode with the "mode NAME" action.


CONFIGURATION

Settings are read from $XDG_CONFIG_HOME/lockwm/config.toml, or the file named
by --config, and from LOCKWM_* environment variables. Bindings are lists of
key and action pairs:

	[keys]
	unlock = "M-Escape"

	[[bindings.normal]]
	key = "A-S-Return"
	action = "spawn xterm -e htop"

Keys are written as modifiers followed by an X keysym name: A- for Alt, C- for
Control, S- for Shift and M- for the Super key. Setting a binding list
replaces its defaults. Run "lockwm check" to print every table as resolved
against the current keyboard layout.
*/
package main
