// Package levels loads Star Pusher level packs from the classic Sokoban
// text format and validates their design constraints at load time: every
// level needs exactly one player start marker, at least one goal, and at
// least as many stars as goals.
//
// The Manager caches parsed packs by name and always provides a built-in
// default pack, so the game can run without any level files on disk.
package levels
