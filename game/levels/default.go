package levels

// DefaultPackName identifies the built-in level pack.
const DefaultPackName = "classic"

// defaultLevels is the built-in pack, used when no levels directory is
// available. Format: # wall, @ player, . goal, $ star, * star on goal,
// + player on goal; ; starts a comment; a blank line ends a level.
const defaultLevels = `; Star Pusher built-in levels

; Level 1: a corridor warm-up.
########
#.  $ @#
########

; Level 2: one push to the left.
 ######
##    #
# .$@ #
#     #
#######

; Level 3: around the block.
########
#  #   #
#@ $ . #
#  #   #
########

; Level 4: push the stars outward.
 ########
##      #
#   .   #
#   $   #
# .$@$. #
#   $   #
#   .   #
#       #
#########
`
